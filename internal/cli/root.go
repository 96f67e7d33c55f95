package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-dresscode/internal/config"
	"github.com/goliatone/go-dresscode/internal/logging"
	"github.com/goliatone/go-dresscode/internal/store"
)

// App carries the state shared by every command of one invocation.
type App struct {
	viper   *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
	prompts PromptDriver
	stdout  io.Writer
	stderr  io.Writer
}

// AppOption customises an App.
type AppOption func(*App)

// WithOutput redirects command output.
func WithOutput(stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithPrompts replaces the interactive prompt driver.
func WithPrompts(driver PromptDriver) AppOption {
	return func(a *App) {
		a.prompts = driver
	}
}

// WithLogger skips logger construction from configuration.
func WithLogger(logger *zap.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewRootCommand builds the dresscode command tree.
func NewRootCommand(options ...AppOption) *cobra.Command {
	app := &App{
		viper:   viper.New(),
		prompts: NewSurveyDriver(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range options {
		if opt != nil {
			opt(app)
		}
	}

	root := &cobra.Command{
		Use:   "dresscode",
		Short: "Compose privacy-aware images from templates and environment data",
		Long: `dresscode draws templates (text and image elements with {{path}}
placeholders) using environment data filtered to a privacy level, and writes
the result as a PNG.

Configuration is read from .dresscode.yaml, --config, and DRESSCODE_*
environment variables (e.g. DRESSCODE_LOG_LEVEL=debug).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "config file (default is .dresscode.yaml)")
	flags.String("database", "", "SQLite database path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	_ = app.viper.BindPFlag(config.KeyDatabase, flags.Lookup("database"))
	_ = app.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = app.viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	root.AddCommand(
		newRenderCommand(app),
		newImportCommand(app),
		newListCommand(app),
		newRemoveCommand(app),
		newWatchCommand(app),
		newPickCommand(app),
		newLintCommand(app),
		newVersionCommand(app),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		a.logger = logger
	}
	a.logger.Debug("configuration loaded",
		zap.String("config", a.viper.ConfigFileUsed()),
		zap.String("database", cfg.Database),
	)
	return nil
}

func (a *App) openStore(ctx context.Context) (*store.Store, error) {
	s, err := store.Open(ctx, a.cfg.Database, store.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.cfg.Database, err)
	}
	return s, nil
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}
