package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terryzhangxr/typace/internal/content"
)

var (
	newTitle string
	newTags  []string
	newForce bool
)

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Creates a new post with front matter",
	Long: `The new command writes './content/posts/<slug>.md' with a front matter
block holding the title, today's date and any tags given with --tag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := strings.TrimSuffix(strings.TrimSpace(args[0]), ".md")
		if slug == "" || strings.ContainsAny(slug, `/\`) {
			return fmt.Errorf("invalid slug %q", args[0])
		}

		dir := filepath.Join(appConfig.ContentDir, content.PostsDir)
		path := filepath.Join(dir, slug+".md")
		if _, err := os.Stat(path); err == nil && !newForce {
			return fmt.Errorf("'%s' already exists, use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		title := newTitle
		if title == "" {
			title = content.TitleFromSlug(slug)
		}
		meta := content.Metadata{
			"title": title,
			"date":  time.Now(),
		}
		if len(newTags) > 0 {
			meta["tags"] = newTags
		}

		data, err := content.EncodeFrontMatter(meta, []byte("Write something.\n"))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create '%s': %w", dir, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write '%s': %w", path, err)
		}
		logger.Info("created post", zap.String("path", path))
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "post title (default derived from the slug)")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "tag to add, repeatable")
	newCmd.Flags().BoolVar(&newForce, "force", false, "overwrite an existing post")
	rootCmd.AddCommand(newCmd)
}
