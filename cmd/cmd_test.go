package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryzhangxr/typace/internal/content"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "new", "hello-world", "--tag", "go", "--tag", "notes")
	require.NoError(t, err)

	path := filepath.Join("content", "posts", "hello-world.md")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	meta, _, err := content.ParseFrontMatter(raw)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", meta.String("title"))
	assert.Equal(t, []string{"go", "notes"}, meta.Strings("tags"))
	_, err = meta.Time("date")
	require.NoError(t, err)

	_, err = run(t, "new", "hello-world")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "page 1 of 1 (1 posts)")

	_, err = run(t, "list", "--page", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	out, err = run(t, "search", "NOTES")
	require.NoError(t, err)
	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "tags: notes")

	out, err = run(t, "search", "nothing-here")
	require.NoError(t, err)
	assert.Contains(t, out, `No posts match "nothing-here".`)

	_, err = run(t, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("public", "posts", "hello-world", "index.html"))
	assert.FileExists(t, filepath.Join("public", "tags", "notes", "index.html"))
}

func TestNew_InvalidSlug(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "new", "a/b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid slug")
}
