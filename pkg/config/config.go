package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// AGENTSCRAPE_CLI_BASE_URL overrides cli.base_url.
const EnvPrefix = "AGENTSCRAPE"

type Config struct {
	// CLI / TUI client
	CLI struct {
		BaseURL        string `toml:"base_url" mapstructure:"base_url"`               // Backend address
		RequestTimeout int    `toml:"request_timeout" mapstructure:"request_timeout"` // Seconds
		PollInterval   int    `toml:"poll_interval" mapstructure:"poll_interval"`     // Seconds between progress reads
		NotifyDuration int    `toml:"notify_duration" mapstructure:"notify_duration"` // Seconds a notification stays visible
		LogLevel       string `toml:"log_level" mapstructure:"log_level"`
		LogDir         string `toml:"log_dir" mapstructure:"log_dir"`
	} `toml:"cli" mapstructure:"cli"`

	// Development backend
	API struct {
		Host string `toml:"host" mapstructure:"host"`
		Port int    `toml:"port" mapstructure:"port"`
	} `toml:"api" mapstructure:"api"`

	DevServer struct {
		ScrapeDuration int `toml:"scrape_duration" mapstructure:"scrape_duration"` // Seconds until a page reports done
	} `toml:"devserver" mapstructure:"devserver"`
}

// DefaultConfig returns a config with default values.
// The base URL matches the backend's local deployment address.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.CLI.BaseURL = "http://127.0.0.1:8000"
	cfg.CLI.RequestTimeout = 30
	cfg.CLI.PollInterval = 3
	cfg.CLI.NotifyDuration = 5
	cfg.CLI.LogLevel = "info"
	cfg.CLI.LogDir = defaultLogDir()
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = 8000
	cfg.DevServer.ScrapeDuration = 9
	return cfg
}

func defaultLogDir() string {
	dir, err := configDir()
	if err != nil {
		return "tmp"
	}
	return filepath.Join(dir, "logs")
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentscrape"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "agentscrape"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads configuration from path (ConfigPath() when empty), applying
// defaults and AGENTSCRAPE_* environment overrides.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(DefaultConfig(), path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// BASE_URL is kept for container setups
	if err := v.BindEnv("cli.base_url", EnvPrefix+"_CLI_BASE_URL", "BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("cli.base_url", d.CLI.BaseURL)
	v.SetDefault("cli.request_timeout", d.CLI.RequestTimeout)
	v.SetDefault("cli.poll_interval", d.CLI.PollInterval)
	v.SetDefault("cli.notify_duration", d.CLI.NotifyDuration)
	v.SetDefault("cli.log_level", d.CLI.LogLevel)
	v.SetDefault("cli.log_dir", d.CLI.LogDir)
	v.SetDefault("api.host", d.API.Host)
	v.SetDefault("api.port", d.API.Port)
	v.SetDefault("devserver.scrape_duration", d.DevServer.ScrapeDuration)
}

// applyDefaults fills zero values left by a partially written file.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.CLI.BaseURL == "" {
		c.CLI.BaseURL = d.CLI.BaseURL
	}
	if c.CLI.RequestTimeout <= 0 {
		c.CLI.RequestTimeout = d.CLI.RequestTimeout
	}
	if c.CLI.PollInterval <= 0 {
		c.CLI.PollInterval = d.CLI.PollInterval
	}
	if c.CLI.NotifyDuration <= 0 {
		c.CLI.NotifyDuration = d.CLI.NotifyDuration
	}
	if c.CLI.LogLevel == "" {
		c.CLI.LogLevel = d.CLI.LogLevel
	}
	if c.CLI.LogDir == "" {
		c.CLI.LogDir = d.CLI.LogDir
	}
	if c.API.Host == "" {
		c.API.Host = d.API.Host
	}
	if c.API.Port == 0 {
		c.API.Port = d.API.Port
	}
	if c.DevServer.ScrapeDuration <= 0 {
		c.DevServer.ScrapeDuration = d.DevServer.ScrapeDuration
	}
}

// Save writes the configuration to path (ConfigPath() when empty)
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Set sets a configuration value.
// Format: section.key (e.g., "cli.base_url")
func (c *Config) Set(keyPath, value string) error {
	parts := strings.Split(keyPath, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section, key := parts[0], parts[1]

	switch section {
	case "cli":
		switch key {
		case "base_url":
			c.CLI.BaseURL = value
		case "request_timeout":
			return setPositive(&c.CLI.RequestTimeout, key, value)
		case "poll_interval":
			return setPositive(&c.CLI.PollInterval, key, value)
		case "notify_duration":
			return setPositive(&c.CLI.NotifyDuration, key, value)
		case "log_level":
			c.CLI.LogLevel = value
		case "log_dir":
			c.CLI.LogDir = value
		default:
			return fmt.Errorf("unknown cli key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			c.API.Host = value
		case "port":
			return setPositive(&c.API.Port, key, value)
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "devserver":
		switch key {
		case "scrape_duration":
			return setPositive(&c.DevServer.ScrapeDuration, key, value)
		default:
			return fmt.Errorf("unknown devserver key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return nil
}

func setPositive(dst *int, key, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid %s value: %s", key, value)
	}
	*dst = n
	return nil
}

// RequestTimeout returns the HTTP client timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.CLI.RequestTimeout) * time.Second
}

// PollInterval returns the fixed interval between progress reads.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.CLI.PollInterval) * time.Second
}

// NotifyDuration returns how long a notification stays on screen.
func (c *Config) NotifyDuration() time.Duration {
	return time.Duration(c.CLI.NotifyDuration) * time.Second
}

// ScrapeDuration returns how long the development backend takes to finish a page.
func (c *Config) ScrapeDuration() time.Duration {
	return time.Duration(c.DevServer.ScrapeDuration) * time.Second
}

// APIAddr returns the development backend listen address.
func (c *Config) APIAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
