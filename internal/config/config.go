// Package config loads the tflash configuration from TOML files and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tflash"

// EnvWebhookURL overrides workflow.webhook_url.
const EnvWebhookURL = "TFLASH_WEBHOOK_URL"

type Config struct {
	Playback    PlaybackConfig    `koanf:"playback"`
	Media       MediaConfig       `koanf:"media"`
	Preferences PreferencesConfig `koanf:"preferences"`
	Workflow    WorkflowConfig    `koanf:"workflow"`
	Remote      RemoteConfig      `koanf:"remote"`
	Log         LogConfig         `koanf:"log"`
}

// PlaybackConfig holds the initial player settings.
type PlaybackConfig struct {
	Volume      float64 `koanf:"volume" default:"0.7" validate:"gte=0,lte=1"`
	Rate        float64 `koanf:"rate" default:"1.0" validate:"gte=0.5,lte=2"`
	SkipSeconds int     `koanf:"skip_seconds" default:"15" validate:"gte=1,lte=300"`
	Placeholder string  `koanf:"placeholder" default:"placeholder:30s" validate:"required"`
}

// MediaConfig tunes the audio backend.
type MediaConfig struct {
	FetchTimeout time.Duration `koanf:"fetch_timeout" default:"30s" validate:"gt=0"`
	SampleRate   int           `koanf:"sample_rate" default:"44100" validate:"oneof=22050 44100 48000 96000"`
}

// PreferencesConfig mirrors the briefing preferences form.
type PreferencesConfig struct {
	Topics         []string `koanf:"topics" default:"[\"technology\",\"business\",\"world\"]" validate:"dive,required"`
	BriefingLength int      `koanf:"briefing_length" default:"15" validate:"oneof=5 10 15 20 30"`
	DeliveryTime   string   `koanf:"delivery_time" default:"8:00 AM" validate:"required"`
	AutoPlay       bool     `koanf:"auto_play"`
	Notifications  *bool    `koanf:"notifications"` // default: true
}

// WorkflowConfig configures the briefing generation webhook.
type WorkflowConfig struct {
	WebhookURL string        `koanf:"webhook_url" validate:"omitempty,url"`
	Timeout    time.Duration `koanf:"timeout" default:"10s" validate:"gt=0"`
}

// RemoteConfig configures the websocket control server.
type RemoteConfig struct {
	Addr string `koanf:"addr" default:"localhost:52846" validate:"required,hostname_port"`
}

// LogConfig configures the log output.
type LogConfig struct {
	Level string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"` // empty: $XDG_STATE_HOME/tflash/tflash.log
}

// Load reads the config files in priority order, then applies the
// environment, defaults and validation.
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles is Load over an explicit list of candidate files (last wins).
// Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set defaults")
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if v := os.Getenv(EnvWebhookURL); v != "" {
		c.Workflow.WebhookURL = v
	}
}

func (c *Config) normalize() {
	c.Workflow.WebhookURL = strings.TrimSpace(c.Workflow.WebhookURL)
	if c.Log.File != "" {
		c.Log.File = expandPath(c.Log.File)
	}
	if c.Preferences.Notifications == nil {
		on := true
		c.Preferences.Notifications = &on
	}
	for i, topic := range c.Preferences.Topics {
		c.Preferences.Topics[i] = strings.ToLower(strings.TrimSpace(topic))
	}
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.normalize()
	return cfg
}

// HasWebhook reports whether briefing generation can be triggered.
func (c *Config) HasWebhook() bool {
	return c.Workflow.WebhookURL != ""
}

// NotificationsEnabled returns the notifications preference.
func (c *Config) NotificationsEnabled() bool {
	return c.Preferences.Notifications == nil || *c.Preferences.Notifications
}

// SkipInterval returns the skip step as a duration.
func (c *Config) SkipInterval() time.Duration {
	return time.Duration(c.Playback.SkipSeconds) * time.Second
}

// LogPath returns the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/tflash/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
