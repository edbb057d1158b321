package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/sitenav/internal/site"
)

const validSite = `title: Docs
description: Notes
themeConfig:
  nav:
    - text: Home
      link: /
  sidebar:
    - text: Angular
      items:
        - text: Intermedio
          link: /docs/es/angular/intermediate
  socialLinks: []
`

const invalidSite = `title: Docs
themeConfig:
  sidebar:
    - text: Sql
      items: []
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() {
		cfgFile = ""
		resetFlags(rootCmd)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeSite(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestValidateBuiltIn(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in: ok")
}

func TestValidateInvalidFile(t *testing.T) {
	path := writeSite(t, "site.yaml", invalidSite)
	_, err := run(t, "validate", path)
	assert.ErrorContains(t, err, "is invalid")
}

func TestExportToDir(t *testing.T) {
	path := writeSite(t, "site.yaml", validSite)
	outDir := filepath.Join(t.TempDir(), "vitepress")

	_, err := run(t, "export", path, "--format", "json", "--out", outDir)
	require.NoError(t, err)

	s, err := site.Load(filepath.Join(outDir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "/docs/es/angular/intermediate", s.ThemeConfig.Sidebar[0].Items[0].Link)
}

func TestExportStdoutYAML(t *testing.T) {
	path := writeSite(t, "site.json", `{"title":"Docs","description":"","themeConfig":{"nav":[{"text":"Home","link":"/"}],"sidebar":[],"socialLinks":[]}}`)
	out, err := run(t, "export", path, "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "themeConfig:\n  nav:\n    - text: Home\n      link: /\n")
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := run(t, "export", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestConfigFileSettings(t *testing.T) {
	sitePath := writeSite(t, "site.yaml", validSite)
	docs := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "docs/es/angular"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "index.md"), []byte("# Inicio\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "docs/es/angular/intermediate.md"), []byte("# Intermedio\n"), 0o644))

	cfg := writeSite(t, "sitenav.yaml", "siteConfig: "+sitePath+"\ndocsDir: "+docs+"\nlogFormat: json\n")
	out, err := run(t, "check", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Inicio (heading)")
	assert.Contains(t, out, "Intermedio (heading)")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "validate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCheckReportsMissingPages(t *testing.T) {
	_, err := run(t, "check", "--docs", t.TempDir())
	assert.ErrorContains(t, err, "have no page under")
}

func TestWatchSite(t *testing.T) {
	path := writeSite(t, "site.yaml", validSite)
	results := make(chan error, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchSite(ctx, path, 20*time.Millisecond, func(err error) { results <- err })
	}()

	next := func() error {
		select {
		case err := <-results:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for validation")
			return nil
		}
	}

	require.NoError(t, next())
	// give the watcher time to register before changing the file
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(invalidSite), 0o644))
	assert.Error(t, next())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
