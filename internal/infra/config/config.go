// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osa030/barplayer/internal/infra/audio"
)

// Config represents the application configuration.
type Config struct {
	Player   PlayerConfig            `yaml:"player"`
	Progress ProgressConfig          `yaml:"progress"`
	Console  ConsoleConfig           `yaml:"console"`
	Formats  map[string]FormatConfig `yaml:"formats"`
}

// PlayerConfig represents audio output configuration.
type PlayerConfig struct {
	// Volume is linear, 0 to 1. An explicit 0 is replaced by the default.
	Volume          float64 `yaml:"volume" default:"0.5" validate:"gte=0,lte=1"`
	SampleRate      int     `yaml:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs        int     `yaml:"buffer_ms" default:"100" validate:"gte=10,lte=2000"`
	ResampleQuality int     `yaml:"resample_quality" default:"4" validate:"gte=1,lte=6"`
}

// ProgressConfig represents progress bar configuration.
type ProgressConfig struct {
	BarWidth    int `yaml:"bar_width" default:"50" validate:"gte=10,lte=200"`
	TickMs      int `yaml:"tick_ms" default:"1000" validate:"gte=10,lte=10000"`
	PausePollMs int `yaml:"pause_poll_ms" default:"50" validate:"gte=1,lte=1000"`
	RegionTop   int `yaml:"region_top" validate:"gte=0"`
}

// ConsoleConfig represents interactive prompt configuration.
type ConsoleConfig struct {
	Prompt      string `yaml:"prompt" default:"> "`
	HistoryFile string `yaml:"history_file"`
}

// FormatConfig represents a decoder format's configuration.
type FormatConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	return finish(&cfg)
}

// Default returns the built-in configuration with environment overrides applied.
func Default() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	// Override with environment variables
	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}

	// Set defaults using creasty/defaults
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() error {
	if v := os.Getenv("BARPLAYER_VOLUME"); v != "" {
		volume, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid BARPLAYER_VOLUME %q", v)
		}
		c.Player.Volume = volume
	}
	if v := os.Getenv("BARPLAYER_HISTORY_FILE"); v != "" {
		c.Console.HistoryFile = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	// Format names must be registered decoders
	registered := audio.GetRegistered()
	for name := range c.Formats {
		if _, ok := registered[name]; !ok {
			return errors.Newf("unknown format %q (available: %v)", name, audio.RegisteredNames())
		}
	}

	return nil
}

// IsFormatEnabled checks if a format is enabled. Formats missing from the
// config are enabled.
func (c *Config) IsFormatEnabled(name string) bool {
	if f, ok := c.Formats[name]; ok {
		return f.Enabled
	}
	return true
}

// FormatConfigs returns the decoder configuration for every registered
// format. The player resample quality applies where a format sets none.
func (c *Config) FormatConfigs() map[string]audio.FormatConfig {
	out := make(map[string]audio.FormatConfig, len(c.Formats))
	for _, name := range audio.RegisteredNames() {
		settings := map[string]any{}
		if f, ok := c.Formats[name]; ok {
			for k, v := range f.Settings {
				settings[k] = v
			}
		}
		if _, ok := settings["resample_quality"]; !ok {
			settings["resample_quality"] = c.Player.ResampleQuality
		}
		out[name] = audio.FormatConfig{
			Enabled:  c.IsFormatEnabled(name),
			Settings: settings,
		}
	}
	return out
}

// SinkConfig returns the audio sink configuration.
func (c *Config) SinkConfig() audio.SinkConfig {
	return audio.SinkConfig{
		SampleRate: c.Player.SampleRate,
		Buffer:     time.Duration(c.Player.BufferMs) * time.Millisecond,
	}
}

// Tick returns the progress repaint interval.
func (p ProgressConfig) Tick() time.Duration {
	return time.Duration(p.TickMs) * time.Millisecond
}

// PausePoll returns the paused re-poll interval.
func (p ProgressConfig) PausePoll() time.Duration {
	return time.Duration(p.PausePollMs) * time.Millisecond
}
