package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terryzhangxr/typace/internal/site"
	"github.com/terryzhangxr/typace/internal/views"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches posts by title, excerpt, content and tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := site.NewBuilder(appConfig, logger).Load()
		if err != nil {
			return err
		}

		res := views.Search(s.Posts, strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if res.Empty() {
			fmt.Fprintf(out, "No posts match %q.\n", res.Query)
			return nil
		}
		for _, h := range res.Hits {
			fmt.Fprintf(out, "%s  %s  %s\n", h.Post.Date.Format("2006-01-02"), h.Post.Slug, h.Post.Title)
			if len(h.MatchedTags) > 0 {
				fmt.Fprintf(out, "            tags: %s\n", strings.Join(h.MatchedTags, ", "))
			}
		}
		return nil
	},
}

var listPage int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints one page of the home feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := site.NewBuilder(appConfig, logger).Load()
		if err != nil {
			return err
		}

		pg := views.NewPaginator(s.Posts, appConfig.PageSize)
		if !pg.Goto(listPage) {
			return fmt.Errorf("page %d out of range (1-%d)", listPage, pg.Pages())
		}
		out := cmd.OutOrStdout()
		for _, p := range pg.Items() {
			fmt.Fprintf(out, "%s  %-24s %s\n", p.Date.Format("2006-01-02"), p.Slug, p.Title)
		}
		fmt.Fprintf(out, "page %d of %d (%d posts)\n", pg.Current(), pg.Pages(), pg.Total())
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number, starting at 1")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
}
