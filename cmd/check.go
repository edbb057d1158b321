package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/sitenav/internal/check"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Checks that every internal link has a Markdown page",
	Long: `The check command resolves each internal nav and sidebar link against
the docs directory (default './docs/'), printing the page title found for it.
Links without a backing page are listed and make the command fail.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, source, err := loadSite(args)
		if err != nil {
			reportConfigErrors(source, err)
			return fmt.Errorf("site config %s is invalid", source)
		}

		report, err := check.Run(s, appConfig.DocsDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, e := range report.Entries {
			fmt.Fprintf(out, "  %-40s %-24q %s (%s)\n", e.Ref.Link, e.Ref.Text, e.Title, e.TitleSource)
		}
		for _, f := range report.Findings {
			logger.Warn().Str("path", f.Ref.Path).Str("link", f.Ref.Link).Msg(string(f.Kind) + ": " + f.Detail)
			fmt.Fprintf(out, "! %s\n", f)
		}
		logger.Info().
			Int("pages", len(report.Entries)).
			Int("missing", len(report.Findings)).
			Int("external", report.External).
			Str("docs", appConfig.DocsDir).
			Msg("Link check finished")

		if !report.OK() {
			return fmt.Errorf("%d link(s) in %s have no page under %s", len(report.Findings), source, appConfig.DocsDir)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().String("docs", "", "docs directory holding the Markdown pages (default ./docs)")
	rootCmd.AddCommand(checkCmd)
}
