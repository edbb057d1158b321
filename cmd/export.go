package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/sitenav/internal/export"
	"github.com/Bitlatte/sitenav/internal/site"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Writes the site configuration in the renderer's shape",
	Long: `The export command validates the site configuration and writes it as
json, yaml or a ts config module. Output goes to stdout unless --out names a
directory, in which case config.json, config.yaml or config.mts is written there.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := site.ParseFormat(appConfig.Format)
		if err != nil {
			return err
		}
		s, source, err := loadSite(args)
		if err != nil {
			reportConfigErrors(source, err)
			return fmt.Errorf("site config %s is invalid", source)
		}

		if appConfig.OutDir == "" {
			return export.Write(cmd.OutOrStdout(), s, format)
		}

		if err := os.MkdirAll(appConfig.OutDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create output directory '%s': %w", appConfig.OutDir, err)
		}
		outputPath := filepath.Join(appConfig.OutDir, export.FileName(format))
		if err := writeFile(outputPath, func(w io.Writer) error { return export.Write(w, s, format) }); err != nil {
			return err
		}
		logger.Info().Str("source", source).Str("file", outputPath).Str("format", string(format)).Msg("Exported site config")
		return nil
	},
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file '%s': %w", path, cerr)
		}
	}()
	return write(f)
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "output format: json, yaml or ts (default json)")
	exportCmd.Flags().StringP("out", "o", "", "directory to write the config file into (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
