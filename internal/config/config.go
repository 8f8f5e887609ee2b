package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/jaskpomo/internal/timer"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	StartMode string          `mapstructure:"start_mode"`
	Durations DurationsConfig `mapstructure:"durations"`
	Log       LogConfig       `mapstructure:"log"`
	Keys      []KeyOverride   `mapstructure:"keys"`
}

// DurationsConfig holds the nominal length of each mode.
type DurationsConfig struct {
	Work       time.Duration `mapstructure:"work"`
	ShortBreak time.Duration `mapstructure:"short_break"`
	LongBreak  time.Duration `mapstructure:"long_break"`
}

// LogConfig holds log sink settings.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// KeyOverride rebinds the keys of one action within a scope.
type KeyOverride struct {
	Scope  string   `mapstructure:"scope"`
	Action string   `mapstructure:"action"`
	Keys   []string `mapstructure:"keys"`
}

// Timer returns the durations as a timer.Durations.
func (d DurationsConfig) Timer() timer.Durations {
	return timer.Durations{Work: d.Work, ShortBreak: d.ShortBreak, LongBreak: d.LongBreak}
}

// Mode parses StartMode.
func (c Config) Mode() (timer.Mode, error) {
	if strings.TrimSpace(c.StartMode) == "" {
		return timer.Work, nil
	}
	return timer.ParseMode(c.StartMode)
}

// Validate checks durations, start mode and log level.
func (c Config) Validate() error {
	if err := c.Durations.Timer().Validate(); err != nil {
		return fmt.Errorf("%w: durations: %w", ErrInvalid, err)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("%w: start_mode: %w", ErrInvalid, err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (want debug, info, warn or error)", ErrInvalid, c.Log.Level)
	}
	for i, k := range c.Keys {
		if strings.TrimSpace(k.Scope) == "" || strings.TrimSpace(k.Action) == "" {
			return fmt.Errorf("%w: keys[%d]: scope and action are required", ErrInvalid, i)
		}
	}
	return nil
}

// DefaultPath is the config file used when no path is given.
func DefaultPath() string {
	if p := os.Getenv("JASKPOMO_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "jaskpomo", "config.toml")
}

// DefaultLogPath is the log file used when none is configured.
func DefaultLogPath() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "jaskpomo", "jaskpomo.log")
}

// Load reads configuration from path and env. Env var overrides use prefix
// JASKPOMO_. A missing file is not an error; an empty path means DefaultPath.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	d := timer.DefaultDurations()
	v.SetDefault("start_mode", timer.Work.String())
	v.SetDefault("durations.work", d.Work)
	v.SetDefault("durations.short_break", d.ShortBreak)
	v.SetDefault("durations.long_break", d.LongBreak)
	v.SetDefault("log.file", DefaultLogPath())
	v.SetDefault("log.level", "info")

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("JASKPOMO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
