package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `siteTitle: Notes
baseURL: https://example.com/
author: Terry
pageSize: 8
sanitize: false
social:
  github: https://github.com/terry
comments:
  endpoint: https://comments.example.com
  repo: terry/blog
gallery:
  - src: /img/a.jpg
    caption: Lake
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, used, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "Notes", cfg.SiteTitle)
	assert.Equal(t, "https://example.com", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 8, cfg.PageSize)
	assert.False(t, cfg.Sanitize)
	assert.Equal(t, "https://github.com/terry", cfg.Social["github"])
	assert.True(t, cfg.Comments.Enabled())
	assert.Equal(t, "terry/blog", cfg.Comments.Repo)
	require.Len(t, cfg.Gallery, 1)
	assert.Equal(t, "Lake", cfg.Gallery[0].Caption)
	assert.Equal(t, "public", cfg.OutputDir, "unset keys keep defaults")
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, used, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, used)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 3, cfg.RecommendCount)
	assert.True(t, cfg.Sanitize)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.False(t, cfg.Comments.Enabled())
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TYPACE_SITETITLE", "From Env")
	t.Setenv("TYPACE_COMMENTS_ENDPOINT", "https://c.example.com")

	cfg, _, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.SiteTitle)
	assert.Equal(t, "https://c.example.com", cfg.Comments.Endpoint)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNormalize_RejectsBadPageSize(t *testing.T) {
	cfg := Config{PageSize: 0, OutputDir: "public"}
	require.Error(t, cfg.Normalize())

	cfg.PageSize = 5
	require.NoError(t, cfg.Normalize())
}
