package cmd

import (
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/spf13/cobra"
)

var contentFile string

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Print the effective content as YAML",
	Long: `content validates an override file, when given, and prints the content
tables the server would render. Redirect the output to start a new override.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := contentFile
		if path == "" {
			path = appConfig.ContentFile
		}
		store, err := content.Open(path)
		if err != nil {
			return err
		}
		out, err := content.Marshal(store.Current())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	contentCmd.Flags().StringVar(&contentFile, "file", "", "YAML content override file (default from PORTFOLIO_CONTENT_FILE)")
	rootCmd.AddCommand(contentCmd)
}
