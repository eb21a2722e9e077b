package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logs     LogsConfig     `yaml:"logs"`
	State    StateConfig    `yaml:"state"`
	Identity IdentityConfig `yaml:"identity"`
	Stats    StatsConfig    `yaml:"stats"`
	RCON     RCONConfig     `yaml:"rcon"`
	Discord  DiscordConfig  `yaml:"discord"`
	OTel     OTelConfig     `yaml:"otel"`
}

type LogsConfig struct {
	Console      string        `yaml:"console"`
	Verbose      string        `yaml:"verbose"` // optional second stream
	PollInterval time.Duration `yaml:"poll_interval"`
}

type StateConfig struct {
	Dir           string        `yaml:"dir"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

type IdentityConfig struct {
	TTL time.Duration     `yaml:"ttl"`
	Geo map[string]string `yaml:"geo"` // ip prefix -> "Country/Region"
}

type StatsConfig struct {
	IgnoredTargets []string `yaml:"ignored_targets"`
}

type RCONConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"-"` // from env only
}

type DiscordConfig struct {
	Enabled   bool     `yaml:"enabled"`
	BotToken  string   `yaml:"-"` // from env only
	ChannelID string   `yaml:"-"` // from env only
	Events    []string `yaml:"events"`
}

type OTelConfig struct {
	Enabled     bool     `yaml:"enabled"`
	ServiceName string   `yaml:"service_name"`
	Events      []string `yaml:"events"` // "all" or explicit kinds
}

func defaultConfig() Config {
	return Config{
		Logs: LogsConfig{
			Console:      "/factorio/console.log",
			PollInterval: time.Second,
		},
		State: StateConfig{
			Dir:           "/var/lib/factorio-watch",
			FlushInterval: 5 * time.Minute,
		},
		Identity: IdentityConfig{
			TTL: 30 * time.Second,
		},
		Stats: StatsConfig{
			IgnoredTargets: []string{"tree", "rock", "cliff"},
		},
		RCON: RCONConfig{
			Host: "localhost",
			Port: "27015",
		},
		Discord: DiscordConfig{
			Events: []string{"all"},
		},
		OTel: OTelConfig{
			ServiceName: "factorio-watch",
			Events:      []string{"all"},
		},
	}
}

func loadConfig() (Config, error) {
	cfg := defaultConfig()

	configPath := envOr("CONFIG_PATH", "/etc/factorio-watch/config.yaml")
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}
	// config file is optional — missing file is not an error

	// Env overrides (secrets + runtime values)
	cfg.RCON.Password = os.Getenv("RCON_PASSWORD")
	if v := os.Getenv("RCON_HOST"); v != "" {
		cfg.RCON.Host = v
	}
	if v := os.Getenv("RCON_PORT"); v != "" {
		cfg.RCON.Port = v
	}
	cfg.Discord.BotToken = os.Getenv("DISCORD_BOT_TOKEN")
	cfg.Discord.ChannelID = os.Getenv("DISCORD_CHANNEL_ID")

	if cfg.Logs.Console == "" {
		return cfg, fmt.Errorf("logs.console is required")
	}
	if cfg.Logs.PollInterval <= 0 {
		cfg.Logs.PollInterval = time.Second
	}
	if cfg.State.FlushInterval <= 0 {
		cfg.State.FlushInterval = 5 * time.Minute
	}
	if cfg.Identity.TTL <= 0 {
		cfg.Identity.TTL = 30 * time.Second
	}

	if cfg.RCON.Enabled && cfg.RCON.Password == "" {
		return cfg, fmt.Errorf("RCON_PASSWORD env is required when rcon.enabled is set")
	}
	if cfg.Discord.BotToken != "" && cfg.Discord.ChannelID == "" {
		return cfg, fmt.Errorf("DISCORD_CHANNEL_ID is required when DISCORD_BOT_TOKEN is set")
	}
	if cfg.Discord.BotToken == "" {
		cfg.Discord.Enabled = false
	}

	return cfg, nil
}

// State file locations, all under one directory.

func (c *Config) offsetPath(logPath string) string {
	return filepath.Join(c.State.Dir, filepath.Base(logPath)+".offset")
}

func (c *Config) presencePath() string {
	return filepath.Join(c.State.Dir, "presence.json")
}

func (c *Config) statsPath() string {
	return filepath.Join(c.State.Dir, "stats.db")
}

// discordEventAllowed returns whether a given event kind should be sent to
// Discord.
func (c *Config) discordEventAllowed(kind Kind) bool {
	if !c.Discord.Enabled {
		return false
	}
	for _, e := range c.Discord.Events {
		if e == "all" || e == string(kind) {
			return true
		}
	}
	return false
}

// otelEventAllowed returns whether a given event kind should be exported as a
// structured log record.
func (c *Config) otelEventAllowed(kind Kind) bool {
	if !c.OTel.Enabled {
		return false
	}
	for _, e := range c.OTel.Events {
		if e == "all" || e == string(kind) {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
