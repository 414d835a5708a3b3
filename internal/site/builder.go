// Package site runs the build: it loads the post index, derives the views
// and writes every page and artifact into the output directory.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	g "maragu.dev/gomponents"

	"github.com/terryzhangxr/typace/internal/config"
	"github.com/terryzhangxr/typace/internal/content"
	"github.com/terryzhangxr/typace/internal/feed"
	"github.com/terryzhangxr/typace/internal/model"
	"github.com/terryzhangxr/typace/internal/theme"
	"github.com/terryzhangxr/typace/internal/views"
)

const (
	aboutFile = "about.md"
	rssLimit  = 20
)

// ErrTagCollision is returned when two tags would be written to the same
// page directory.
var ErrTagCollision = errors.New("tag page collision")

// Builder turns a content directory into a static site.
type Builder struct {
	cfg      config.Config
	log      *zap.Logger
	renderer *content.Renderer
	theme    *theme.Theme
}

func NewBuilder(cfg config.Config, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		cfg:      cfg,
		log:      log,
		renderer: content.NewRenderer(cfg.Sanitize),
		theme:    theme.New(cfg),
	}
}

func (b *Builder) Theme() *theme.Theme { return b.theme }

func (b *Builder) Config() config.Config { return b.cfg }

// Load builds the post index and the derived views without writing
// anything.
func (b *Builder) Load() (*model.Site, error) {
	if _, err := os.Stat(b.cfg.ContentDir); err != nil {
		return nil, fmt.Errorf("content directory '%s' not found. Please create it and add your Markdown files: %w", b.cfg.ContentDir, err)
	}

	loader := &content.Loader{
		Dir:      filepath.Join(b.cfg.ContentDir, content.PostsDir),
		Renderer: b.renderer,
		Logger:   b.log,
	}
	posts, err := loader.Load()
	if err != nil {
		return nil, err
	}

	s := &model.Site{
		Posts:   posts,
		BySlug:  make(map[string]*model.Post, len(posts)),
		Archive: views.Archive(posts),
		Tags:    views.Tags(posts),
		Built:   time.Now(),
	}
	for _, p := range posts {
		s.BySlug[p.Slug] = p
	}
	if err := checkTagPaths(s.Tags); err != nil {
		return nil, err
	}

	aboutPath := filepath.Join(b.cfg.ContentDir, aboutFile)
	if _, err := os.Stat(aboutPath); err == nil {
		about, err := content.LoadPage(aboutPath, b.renderer)
		if err != nil {
			return nil, err
		}
		s.About = about
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat '%s': %w", aboutPath, err)
	}

	b.log.Info("content loaded",
		zap.Int("posts", len(posts)),
		zap.Int("tags", len(s.Tags)),
		zap.Int("years", len(s.Archive)))
	return s, nil
}

// checkTagPaths rejects tags whose pages would share a directory. Paths are
// compared case-insensitively so the output also works on macOS and Windows.
func checkTagPaths(groups []model.TagGroup) error {
	seen := make(map[string]string, len(groups))
	for _, tg := range groups {
		key := strings.ToLower(theme.TagPath(tg.Name))
		if key == "index.html" {
			return fmt.Errorf("%w: tag %q clashes with the tag index page", ErrTagCollision, tg.Name)
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("%w: tags %q and %q both map to 'tags/%s', rename one of them", ErrTagCollision, other, tg.Name, theme.TagPath(tg.Name))
		}
		seen[key] = tg.Name
	}
	return nil
}

// Build cleans the output directory and writes the whole site. On error the
// output directory may be partially written.
func (b *Builder) Build(ctx context.Context) (*model.Site, error) {
	start := time.Now()
	outputDir := b.cfg.OutputDir

	s, err := b.Load()
	if err != nil {
		return nil, err
	}

	b.log.Info("cleaning output directory", zap.String("dir", outputDir))
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if _, err := os.Stat(b.cfg.StaticDir); err == nil {
		b.log.Info("copying static assets", zap.String("from", b.cfg.StaticDir))
		if err := copyDirContents(b.cfg.StaticDir, outputDir, b.log); err != nil {
			return nil, fmt.Errorf("failed to copy static assets: %w", err)
		}
	} else {
		b.log.Debug("static directory not found, skipping copy", zap.String("dir", b.cfg.StaticDir))
	}
	if err := copyFS(theme.Assets, theme.AssetsDir, filepath.Join(outputDir, theme.AssetsDir)); err != nil {
		return nil, fmt.Errorf("failed to write theme assets: %w", err)
	}

	if err := b.writePages(ctx, s); err != nil {
		return nil, err
	}
	if err := b.writeArtifacts(s); err != nil {
		return nil, err
	}

	b.log.Info("build completed",
		zap.String("output", outputDir),
		zap.Int("posts", len(s.Posts)),
		zap.Duration("took", time.Since(start)))
	return s, nil
}

type page struct {
	path string // relative to the output directory
	node g.Node
}

// pages lists every HTML page of the site with its output path.
func (b *Builder) pages(s *model.Site) []page {
	t := b.theme
	var out []page

	pg := views.NewPaginator(s.Posts, b.cfg.PageSize)
	stats := views.TagStats(s.Posts)
	for n := 1; n <= pg.Pages(); n++ {
		pg.Goto(n)
		path := "index.html"
		if n > 1 {
			path = filepath.Join("page", strconv.Itoa(n), "index.html")
		}
		out = append(out, page{path, t.Home(pg, stats)})
	}

	out = append(out,
		page{filepath.Join("archive", "index.html"), t.Archive(s.Archive)},
		page{filepath.Join("tags", "index.html"), t.Tags(s.Tags)},
		page{filepath.Join("about", "index.html"), t.About(s.About)},
		page{filepath.Join("gallery", "index.html"), t.Gallery()},
		page{filepath.Join("search", "index.html"), t.Search(views.Results{})},
		page{"404.html", t.NotFound()},
	)
	for _, tg := range s.Tags {
		out = append(out, page{filepath.Join("tags", theme.TagPath(tg.Name), "index.html"), t.Tag(tg)})
	}
	for _, p := range s.Posts {
		out = append(out, page{filepath.Join("posts", p.Slug, "index.html"), t.Post(b.PostView(s, p))})
	}
	return out
}

// PostView gathers the neighbours and recommendations shown next to p.
func (b *Builder) PostView(s *model.Site, p *model.Post) theme.PostView {
	prev, next := views.Neighbors(s.Posts, p.Slug)
	return theme.PostView{
		Post:        p,
		Prev:        prev,
		Next:        next,
		Recommended: views.Recommend(s.Posts, p.Slug, b.cfg.RecommendCount, b.cfg.RecommendSeed),
	}
}

func (b *Builder) writePages(ctx context.Context, s *model.Site) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for _, pg := range b.pages(s) {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.writePage(pg)
		})
	}
	return eg.Wait()
}

func (b *Builder) writePage(pg page) error {
	var buf bytes.Buffer
	if err := theme.Render(&buf, pg.node); err != nil {
		return fmt.Errorf("failed to render page '%s': %w", pg.path, err)
	}
	if err := b.writeFile(pg.path, buf.Bytes()); err != nil {
		return err
	}
	b.log.Debug("generated page", zap.String("path", pg.path))
	return nil
}

func (b *Builder) writeFile(rel string, data []byte) error {
	target := filepath.Join(b.cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", target, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", target, err)
	}
	return nil
}

func (b *Builder) writeArtifacts(s *model.Site) error {
	if b.cfg.BaseURL == "" {
		b.log.Warn("baseURL is not set, sitemap and RSS links will be relative and rejected by crawlers and feed readers")
	}
	listings := []string{"/archive/", "/tags/", "/about/", "/gallery/"}
	for _, tg := range s.Tags {
		listings = append(listings, theme.TagURL(tg.Name))
	}
	sitemap, err := feed.Sitemap(b.cfg.BaseURL, s.Posts, listings, s.Built)
	if err != nil {
		return err
	}
	if err := b.writeFile("sitemap.xml", sitemap); err != nil {
		return err
	}

	rss, err := feed.RSS(feed.Channel{
		Title:       b.cfg.SiteTitle,
		Description: b.cfg.Description,
		Author:      b.cfg.Author,
		BaseURL:     b.cfg.BaseURL,
	}, s.Posts, rssLimit)
	if err != nil {
		return err
	}
	if err := b.writeFile("rss.xml", []byte(rss)); err != nil {
		return err
	}

	index, err := feed.SearchIndex(s.Posts)
	if err != nil {
		return err
	}
	return b.writeFile("search.json", index)
}
