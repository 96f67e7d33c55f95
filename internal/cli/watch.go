package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

func newWatchCommand(app *App) *cobra.Command {
	flags := &renderFlags{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever the template or environment file changes",
		Long: `Render once, then watch the template and environment documents and
render again after every change. Stop with Ctrl+C.

Example:
  dresscode watch --template badge.yaml --environment staff.yaml --out badge.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.template == "" || flags.environment == "" {
				return errors.New("watch: --template and --environment are required")
			}
			if flags.out == "" {
				return errors.New("watch: --out is required")
			}
			ctx := cmd.Context()
			renderOnce := func() error {
				req, err := app.fileRequest(flags)
				if err != nil {
					return err
				}
				url, err := app.newComposer().Compose(ctx, req)
				if err != nil {
					return err
				}
				return app.writeImage(url, flags.out)
			}
			if err := renderOnce(); err != nil {
				app.logger.Error("render failed", zap.Error(err))
			}
			return watchFiles(ctx, []string{flags.template, flags.environment}, debounce, app.logger, renderOnce)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.template, "template", "t", "", "template document")
	f.StringVarP(&flags.environment, "environment", "e", "", "environment document")
	f.StringVarP(&flags.level, "level", "l", "", "privacy level (low, medium, high)")
	f.StringVar(&flags.background, "background", "", "static background image URL or path")
	f.StringVarP(&flags.out, "out", "o", "", "output PNG path")
	f.DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-rendering")
	return cmd
}

// watchFiles calls onChange after files change, coalescing bursts of events
// within debounce. Parent directories are watched so editors that replace
// files on save are still seen. It returns when ctx is done.
func watchFiles(ctx context.Context, files []string, debounce time.Duration, logger *zap.Logger, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("watch: resolve %s: %w", file, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; !ok {
				continue
			}
			logger.Debug("file changed", zap.String("path", abs), zap.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			if err := onChange(); err != nil {
				logger.Error("render failed", zap.Error(err))
			}
		}
	}
}
