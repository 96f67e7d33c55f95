package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-dresscode/internal/logging"
	"github.com/goliatone/go-dresscode/pkg/privacy"
	"github.com/goliatone/go-dresscode/pkg/render"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. DRESSCODE_LOG_LEVEL.
	EnvPrefix = "DRESSCODE"
	// FileName is the config file searched for in the working directory.
	FileName = ".dresscode"

	KeyDatabase            = "database"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
	KeyAssetsTimeout       = "assets.timeout"
	KeyAssetsBaseDir       = "assets.base_dir"
	KeyPrivacyDefaultLevel = "privacy.default_level"
	KeyOutputJPEGQuality   = "output.jpeg_quality"
	KeyTextStripMarkup     = "text.strip_markup"
)

// Config is the resolved CLI configuration.
type Config struct {
	Database string  `mapstructure:"database"`
	Log      Log     `mapstructure:"log"`
	Assets   Assets  `mapstructure:"assets"`
	Privacy  Privacy `mapstructure:"privacy"`
	Output   Output  `mapstructure:"output"`
	Text     Text    `mapstructure:"text"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Assets struct {
	Timeout time.Duration `mapstructure:"timeout"`
	BaseDir string        `mapstructure:"base_dir"`
}

type Privacy struct {
	DefaultLevel string `mapstructure:"default_level"`
}

type Output struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// Text controls how hydrated text is drawn.
type Text struct {
	// StripMarkup removes HTML tags from text before drawing it.
	StripMarkup bool `mapstructure:"strip_markup"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabase, "dresscode.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatConsole)
	v.SetDefault(KeyAssetsTimeout, 10*time.Second)
	v.SetDefault(KeyAssetsBaseDir, "")
	v.SetDefault(KeyPrivacyDefaultLevel, string(privacy.Low))
	v.SetDefault(KeyOutputJPEGQuality, render.DefaultJPEGQuality)
	v.SetDefault(KeyTextStripMarkup, false)
}

// Load reads configuration into v from file (when non-empty) or from
// .dresscode.yaml in the working directory, then applies DRESSCODE_*
// environment overrides. A missing default config file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("config: database path is required")
	}
	if c.Assets.Timeout < 0 {
		return fmt.Errorf("config: assets.timeout must not be negative, got %s", c.Assets.Timeout)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("config: output.jpeg_quality must be between 1 and 100, got %d", c.Output.JPEGQuality)
	}
	if _, err := privacy.ParseLevel(c.Privacy.DefaultLevel); err != nil {
		return fmt.Errorf("config: privacy.default_level: %w", err)
	}
	return nil
}

// DefaultLevel returns the validated default privacy level.
func (c Config) DefaultLevel() privacy.Level {
	level, err := privacy.ParseLevel(c.Privacy.DefaultLevel)
	if err != nil {
		return privacy.Low
	}
	return level
}
