package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bitlatte/sitenav/internal/config"
	"github.com/Bitlatte/sitenav/internal/logging"
	"github.com/Bitlatte/sitenav/internal/model"
	"github.com/Bitlatte/sitenav/internal/site"
)

var cfgFile string
var appConfig config.Config
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "sitenav",
	Short: "sitenav - navigation config for documentation sites",
	Long: `sitenav validates the navigation, sidebar and social links of a
documentation site and exports them in the shape the site renderer expects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sitenav.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (console or json)")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	for key, value := range config.Defaults {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sitenav")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITENAV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindings := map[string]string{
		"logLevel":  "log-level",
		"logFormat": "log-format",
		"docsDir":   "docs",
		"format":    "format",
		"outDir":    "out",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", flag, err)
			}
		}
	}

	usedFile := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		usedFile = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	l, err := logging.New(cmd.ErrOrStderr(), appConfig.LogLevel, appConfig.LogFormat)
	if err != nil {
		return err
	}
	logger = l
	if usedFile != "" {
		logger.Debug().Str("file", usedFile).Msg("Using config file")
	} else {
		logger.Debug().Msg("No config file found, using defaults and environment")
	}
	return nil
}

// loadSite picks the site configuration: an explicit argument first, then
// the siteConfig setting, then the built-in default.
func loadSite(args []string) (*model.Site, string, error) {
	path := appConfig.SiteConfig
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		s, err := site.Default()
		return s, "built-in", err
	}
	s, err := site.Load(path)
	return s, path, err
}

// reportConfigErrors logs every ConfigurationError inside err, one per entry.
func reportConfigErrors(source string, err error) {
	var errs []error
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, e := range errs {
		var ce *model.ConfigurationError
		if errors.As(e, &ce) {
			logger.Error().Str("source", source).Str("path", ce.Path).Str("label", ce.Label).Msg(ce.Error())
		} else {
			logger.Error().Err(e).Str("source", source).Msg("Failed to load site config")
		}
	}
}
