// Package config provides YAML-based configuration loading for the console.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level console configuration, loaded from gcart.yaml.
type Config struct {
	API       APIConfig       `yaml:"api"`
	StatePath string          `yaml:"state_path"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Notify    NotifyConfig    `yaml:"notify"`
}

// APIConfig holds connection settings for the logistics service.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DashboardConfig configures the local web console.
type DashboardConfig struct {
	Port int `yaml:"port"`
	// RefreshCron is a 5-field cron expression for polling the latest
	// simulation into the local cache.
	RefreshCron string `yaml:"refresh_cron"`
	// PreviewLimit caps the per-order rows shown on the overview page.
	PreviewLimit int `yaml:"preview_limit"`
}

// NotifyConfig configures simulation-complete notifications. A target with
// an empty token is disabled.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds the Slack bot credential and target channel.
type SlackConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// DiscordConfig holds the Discord bot credential and target channel.
type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error: the defaults let a fresh install log in
// against a local service without any setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Parse(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5001/api"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 15
	}
	if c.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.StatePath = filepath.Join(home, ".gcart", "state.db")
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8090
	}
	if c.Dashboard.RefreshCron == "" {
		c.Dashboard.RefreshCron = "*/2 * * * *"
	}
	if c.Dashboard.PreviewLimit == 0 {
		c.Dashboard.PreviewLimit = 10
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Sprintf("api.base_url %q must be an http(s) URL", c.API.BaseURL))
	}
	if c.API.TimeoutSeconds < 0 {
		errs = append(errs, "api.timeout_seconds must not be negative")
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		errs = append(errs, fmt.Sprintf("dashboard.port %d out of range", c.Dashboard.Port))
	}
	if c.Notify.Slack.BotToken != "" && c.Notify.Slack.Channel == "" {
		errs = append(errs, "notify.slack.channel is required when a slack token is set")
	}
	if c.Notify.Discord.BotToken != "" && c.Notify.Discord.ChannelID == "" {
		errs = append(errs, "notify.discord.channel_id is required when a discord token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
