package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Bitlatte/sitenav/internal/site"
)

const debounceDuration = 500 * time.Millisecond

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-validates a site configuration whenever it changes",
	Long: `The watch command validates the site configuration file once, then
watches it and validates it again after every change until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appConfig.SiteConfig
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return errors.New("watch needs a site config file (argument or siteConfig setting)")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		return watchSite(ctx, path, debounceDuration, func(err error) {
			if err != nil {
				reportConfigErrors(path, err)
				fmt.Fprintf(out, "%s: invalid\n", path)
				return
			}
			fmt.Fprintf(out, "%s: ok\n", path)
		})
	},
}

// watchSite validates path now and after each change to it, calling report
// with the result. It returns when ctx is done.
func watchSite(ctx context.Context, path string, debounce time.Duration, report func(error)) error {
	validate := func() error {
		_, err := site.Load(path)
		return err
	}
	report(validate())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info().Str("file", abs).Msg("Watching site config for changes")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			logger.Info().Str("file", abs).Msg("Re-validating site config")
			report(validate())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
