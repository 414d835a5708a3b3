package cmd

import (
	"github.com/spf13/cobra"

	"github.com/terryzhangxr/typace/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content and static assets",
	Long: `The build command loads every post from './content/posts/', parses its
front matter, renders the Markdown, derives the archive, tag and feed pages,
copies './static/' and writes the site into the configured output directory
(default './public/'). Any unreadable or malformed post aborts the build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := site.NewBuilder(appConfig, logger).Build(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
