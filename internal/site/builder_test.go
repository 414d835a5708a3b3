package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/terryzhangxr/typace/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		SiteTitle:      "Test Blog",
		Description:    "A blog for tests",
		Author:         "Tester",
		BaseURL:        "https://example.com",
		Language:       "en",
		OutputDir:      filepath.Join(root, "public"),
		ContentDir:     filepath.Join(root, "content"),
		StaticDir:      filepath.Join(root, "static"),
		PageSize:       5,
		RecommendCount: 2,
		Sanitize:       true,
		Comments:       config.Comments{Endpoint: "https://comments.example.com/client.js"},
		Gallery:        []config.GalleryImage{{Src: "/img/lake.jpg", Caption: "Lake"}},
	}
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.ContentDir, "posts"), 0755))
	return cfg
}

func write(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func seedPosts(t *testing.T, cfg config.Config, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		tags := "[go]"
		if i%2 == 1 {
			tags = "[go, notes]"
		}
		body := fmt.Sprintf("---\ntitle: Post %d\ndate: 2024-01-%02d\ntags: %s\n---\n# Intro\n\nBody of post %d.\n\n## Details\n\nMore.\n", i, i+1, tags, i)
		write(t, filepath.Join(cfg.ContentDir, "posts", fmt.Sprintf("post-%02d.md", i)), body)
	}
}

func TestBuilder_Load(t *testing.T) {
	cfg := testConfig(t)
	seedPosts(t, cfg, 3)
	write(t, filepath.Join(cfg.ContentDir, "about.md"), "---\ntitle: About Me\n---\nHello.\n")

	s, err := NewBuilder(cfg, nil).Load()
	require.NoError(t, err)

	require.Len(t, s.Posts, 3)
	assert.Equal(t, "post-02", s.Posts[0].Slug, "newest first")
	require.Len(t, s.Archive, 1)
	assert.Equal(t, 2024, s.Archive[0].Year)
	require.Len(t, s.Tags, 2)
	assert.Equal(t, "go", s.Tags[0].Name)
	require.NotNil(t, s.About)
	assert.Equal(t, "About Me", s.About.Title)

	p, ok := s.Lookup("post-01")
	require.True(t, ok)
	assert.Equal(t, "Post 1", p.Title)
}

func TestBuilder_LoadMissingContent(t *testing.T) {
	cfg := testConfig(t)
	cfg.ContentDir = filepath.Join(t.TempDir(), "nope")

	_, err := NewBuilder(cfg, nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestBuilder_Build(t *testing.T) {
	cfg := testConfig(t)
	seedPosts(t, cfg, 12)
	write(t, filepath.Join(cfg.StaticDir, "img", "lake.jpg"), "jpeg")
	write(t, filepath.Join(cfg.OutputDir, "stale.html"), "old")

	s, err := NewBuilder(cfg, nil).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Posts, 12)

	out := cfg.OutputDir
	for _, rel := range []string{
		"index.html",
		"page/2/index.html",
		"page/3/index.html",
		"archive/index.html",
		"tags/index.html",
		"tags/go/index.html",
		"tags/notes/index.html",
		"about/index.html",
		"gallery/index.html",
		"search/index.html",
		"404.html",
		"posts/post-00/index.html",
		"sitemap.xml",
		"rss.xml",
		"search.json",
		"assets/site.css",
		"assets/site.js",
		"img/lake.jpg",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
	assert.NoFileExists(t, filepath.Join(out, "stale.html"), "output dir is cleaned")
	assert.NoDirExists(t, filepath.Join(out, "page", "4"))

	home := read(t, filepath.Join(out, "index.html"))
	assert.Contains(t, home, "Post 11")
	assert.NotContains(t, home, "Post 6<", "page 1 shows five posts")
	assert.Contains(t, home, `href="/page/2/"`)

	last := read(t, filepath.Join(out, "page", "3", "index.html"))
	assert.Contains(t, last, "Post 1<")
	assert.Contains(t, last, "Post 0<")

	post := read(t, filepath.Join(out, "posts", "post-05", "index.html"))
	assert.Contains(t, post, `<h1 id="intro">Intro</h1>`)
	assert.Contains(t, post, `href="#details"`)
	assert.Contains(t, post, `data-comments-endpoint="https://comments.example.com/client.js"`)
	assert.Contains(t, post, `href="/posts/post-06/"`, "link to the newer neighbour")
	assert.Contains(t, post, "You might also like")

	sitemap := read(t, filepath.Join(out, "sitemap.xml"))
	assert.Contains(t, sitemap, "https://example.com/posts/post-00/")

	rss := read(t, filepath.Join(out, "rss.xml"))
	assert.Contains(t, rss, "<title>Test Blog</title>")

	gallery := read(t, filepath.Join(out, "gallery", "index.html"))
	assert.Contains(t, gallery, "Lake")
}

func TestBuilder_BuildFailsOnBadPost(t *testing.T) {
	cfg := testConfig(t)
	seedPosts(t, cfg, 2)
	write(t, filepath.Join(cfg.ContentDir, "posts", "broken.md"), "---\ntitle: [bad\n---\nx\n")

	_, err := NewBuilder(cfg, nil).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.md")
}

func TestBuilder_EmptyBlog(t *testing.T) {
	cfg := testConfig(t)

	s, err := NewBuilder(cfg, nil).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.Posts)

	home := read(t, filepath.Join(cfg.OutputDir, "index.html"))
	assert.Contains(t, home, "No posts yet.")
}

func TestBuilder_TagsWithSimilarNamesGetOwnPages(t *testing.T) {
	cfg := testConfig(t)
	write(t, filepath.Join(cfg.ContentDir, "posts", "slash.md"), "---\ntitle: Slash\ndate: 2024-02-01\ntags: [c/c++]\n---\nslash\n")
	write(t, filepath.Join(cfg.ContentDir, "posts", "dash.md"), "---\ntitle: Dash\ndate: 2024-02-02\ntags: [c-c++]\n---\ndash\n")

	s, err := NewBuilder(cfg, nil).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Tags, 2)

	entries, err := os.ReadDir(filepath.Join(cfg.OutputDir, "tags"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"c%2Fc++", "c-c++", "index.html"}, names)

	slash := read(t, filepath.Join(cfg.OutputDir, "tags", "c%2Fc++", "index.html"))
	assert.Contains(t, slash, `href="/posts/slash/"`)
	assert.NotContains(t, slash, `href="/posts/dash/"`)

	dash := read(t, filepath.Join(cfg.OutputDir, "tags", "c-c++", "index.html"))
	assert.Contains(t, dash, `href="/posts/dash/"`)
	assert.NotContains(t, dash, `href="/posts/slash/"`)
}

func TestBuilder_TagsDifferingInCaseFail(t *testing.T) {
	cfg := testConfig(t)
	write(t, filepath.Join(cfg.ContentDir, "posts", "a.md"), "---\ntitle: A\ndate: 2024-02-01\ntags: [Go]\n---\na\n")
	write(t, filepath.Join(cfg.ContentDir, "posts", "b.md"), "---\ntitle: B\ndate: 2024-02-02\ntags: [go]\n---\nb\n")

	_, err := NewBuilder(cfg, nil).Build(context.Background())
	require.ErrorIs(t, err, ErrTagCollision)
	assert.Contains(t, err.Error(), `"Go"`)
	assert.Contains(t, err.Error(), `"go"`)
	assert.NoDirExists(t, cfg.OutputDir, "nothing is written")
}

func TestBuilder_WarnsWithoutBaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.BaseURL = ""
	seedPosts(t, cfg, 1)

	core, logs := observer.New(zapcore.WarnLevel)
	_, err := NewBuilder(cfg, zap.New(core)).Build(context.Background())
	require.NoError(t, err)

	warnings := logs.FilterMessageSnippet("baseURL is not set")
	assert.Equal(t, 1, warnings.Len())

	cfg = testConfig(t)
	core, logs = observer.New(zapcore.WarnLevel)
	_, err = NewBuilder(cfg, zap.New(core)).Build(context.Background())
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessageSnippet("baseURL").Len())
}

func TestCopyDirContents(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	write(t, filepath.Join(src, "a", "b.txt"), "hello")
	require.NoError(t, os.Chmod(filepath.Join(src, "a", "b.txt"), 0600))

	require.NoError(t, copyDirContents(src, dst, zap.NewNop()))

	assert.Equal(t, "hello", read(t, filepath.Join(dst, "a", "b.txt")))
	info, err := os.Stat(filepath.Join(dst, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
