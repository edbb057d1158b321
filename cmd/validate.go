package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validates a site configuration",
	Long: `The validate command loads a site configuration (.json, .yaml or .yml),
or the built-in one when no file is given, and reports every malformed entry
by position and label. Repeated labels among siblings are reported as warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, source, err := loadSite(args)
		if err != nil {
			reportConfigErrors(source, err)
			return fmt.Errorf("site config %s is invalid", source)
		}
		for _, d := range s.DuplicateLabels() {
			logger.Warn().Str("source", source).Str("path", d.Path).Int("count", d.Count).Msgf("Duplicate label %q", d.Label)
		}

		tc := s.ThemeConfig
		logger.Info().
			Str("source", source).
			Int("nav", len(tc.Nav)).
			Int("sidebar", len(tc.Sidebar)).
			Int("socialLinks", len(tc.SocialLinks)).
			Msg("Site config is valid")
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d nav entries, %d sidebar groups, %d social links)\n",
			source, len(tc.Nav), len(tc.Sidebar), len(tc.SocialLinks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
