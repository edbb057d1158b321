package config

// Config holds the tool settings read by viper from sitenav.yaml, flags and
// SITENAV_* environment variables.
type Config struct {
	SiteConfig string `mapstructure:"siteConfig"`
	DocsDir    string `mapstructure:"docsDir"`
	Format     string `mapstructure:"format"`
	OutDir     string `mapstructure:"outDir"`
	LogLevel   string `mapstructure:"logLevel"`
	LogFormat  string `mapstructure:"logFormat"`
}

// Defaults are applied before the config file and environment are read.
var Defaults = map[string]any{
	"siteConfig": "",
	"docsDir":    "docs",
	"format":     "json",
	"outDir":     "",
	"logLevel":   "info",
	"logFormat":  "console",
}
