package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/terryzhangxr/typace/internal/model"
)

// PostsDir is the directory under the content root that holds posts.
const PostsDir = "posts"

// reserved front matter keys; everything else lands in Post.Extra.
var knownKeys = map[string]bool{
	"title":   true,
	"date":    true,
	"tags":    true,
	"cover":   true,
	"excerpt": true,
	"draft":   true,
}

// Loader builds the post index from a directory of markdown files.
type Loader struct {
	Dir      string
	Renderer *Renderer
	Logger   *zap.Logger
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Load reads every .md file under Dir and returns the posts sorted by date,
// newest first. Posts with equal dates keep file enumeration order. The first
// file that cannot be read or parsed aborts the load.
func (l *Loader) Load() ([]*model.Post, error) {
	if l.Renderer == nil {
		l.Renderer = NewRenderer(true)
	}
	log := l.logger()

	if _, err := os.Stat(l.Dir); err != nil {
		return nil, fmt.Errorf("posts directory '%s' not accessible: %w", l.Dir, err)
	}

	var posts []*model.Post
	seen := make(map[string]string)

	walkErr := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path '%s': %w", path, err)
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", path, err)
		}

		post, draft, err := l.parsePost(path, raw)
		if err != nil {
			return fmt.Errorf("failed to parse '%s': %w", path, err)
		}
		if draft {
			log.Debug("skipping draft", zap.String("path", path))
			return nil
		}
		if prev, dup := seen[post.Slug]; dup {
			return fmt.Errorf("duplicate slug %q in '%s' and '%s'", post.Slug, prev, path)
		}
		seen[post.Slug] = path

		log.Debug("loaded post", zap.String("path", path), zap.String("slug", post.Slug))
		posts = append(posts, post)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	SortByDate(posts)
	return posts, nil
}

// SortByDate orders posts newest first, keeping the existing order of posts
// that share a date.
func SortByDate(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

func (l *Loader) parsePost(path string, raw []byte) (*model.Post, bool, error) {
	meta, body, err := ParseFrontMatter(raw)
	if err != nil {
		return nil, false, err
	}
	if meta.Bool("draft") {
		return nil, true, nil
	}

	slug := SlugFromPath(path)
	if slug == "" {
		return nil, false, errors.New("empty slug")
	}

	date, err := meta.Time("date")
	if err != nil {
		return nil, false, err
	}

	title := meta.String("title")
	if title == "" {
		title = TitleFromSlug(slug)
	}
	if title == "" {
		return nil, false, ErrMissingTitle
	}

	html, toc, err := l.Renderer.Convert(body)
	if err != nil {
		return nil, false, err
	}

	text := string(body)
	override, ok := meta["excerpt"].(string)
	if !ok {
		override = meta.String("excerpt")
	}
	extra := make(map[string]any)
	for k, v := range meta {
		if !knownKeys[k] {
			extra[k] = v
		}
	}

	return &model.Post{
		Slug:        slug,
		Title:       title,
		Date:        date,
		Tags:        meta.Strings("tags"),
		Cover:       meta.String("cover"),
		Excerpt:     Excerpt(text, ExcerptLength(text), override),
		Content:     text,
		Plain:       StripMarkup(text),
		ContentHTML: html,
		TOC:         toc,
		Extra:       extra,
		SourcePath:  path,
		Permalink:   PostPermalink(slug),
	}, false, nil
}

// LoadPage reads a standalone markdown page. Unlike posts, pages need no
// date.
func LoadPage(path string, r *Renderer) (*model.Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	meta, body, err := ParseFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	html, toc, err := r.Convert(body)
	if err != nil {
		return nil, fmt.Errorf("failed to render '%s': %w", path, err)
	}

	title := meta.String("title")
	if title == "" {
		title = TitleFromSlug(SlugFromPath(path))
	}
	extra := make(map[string]any, len(meta))
	for k, v := range meta {
		extra[k] = v
	}
	return &model.Page{
		Title:       title,
		ContentHTML: html,
		TOC:         toc,
		Extra:       extra,
		SourcePath:  path,
	}, nil
}

// SlugFromPath is the file name without its extension.
func SlugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TitleFromSlug turns "my-first_post" into "My First Post".
func TitleFromSlug(slug string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(strings.TrimSpace(words))
}

// PostPermalink is the site-relative URL of a post.
func PostPermalink(slug string) string {
	return "/posts/" + slug + "/"
}
