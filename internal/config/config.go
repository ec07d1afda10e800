// Package config provides configuration management for the performance
// tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Cycle       CycleConfig   `mapstructure:"cycle"`
	Feed        FeedConfig    `mapstructure:"feed"`
	Capital     CapitalConfig `mapstructure:"capital"`
	Access      AccessConfig  `mapstructure:"access"`
	UI          UIConfig      `mapstructure:"ui"`
	Credentials Credentials   `mapstructure:"-"` // Loaded separately
}

// CycleConfig describes how the trading-day grid is generated.
type CycleConfig struct {
	Policy   string   `mapstructure:"policy"` // "month" or "count"
	Year     int      `mapstructure:"year"`
	Month    int      `mapstructure:"month"`
	Start    string   `mapstructure:"start"` // ISO date, "count" policy only
	Count    int      `mapstructure:"count"`
	Holidays []string `mapstructure:"holidays"` // extra ISO dates beyond the exchange calendar
}

// FeedConfig describes where day entries and credentials come from.
type FeedConfig struct {
	Mode           string        `mapstructure:"mode"` // "local", "csv", "json"
	RecordsURL     string        `mapstructure:"records_url"`
	CredentialsURL string        `mapstructure:"credentials_url"`
	CapitalURL     string        `mapstructure:"capital_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// CapitalConfig holds the starting balance used when no capital feed is
// configured.
type CapitalConfig struct {
	Initial float64 `mapstructure:"initial"`
}

// AccessConfig holds the admin pair and the cycle-reset password.
type AccessConfig struct {
	AdminLogin    string        `mapstructure:"admin_login"`
	AdminPassword string        `mapstructure:"admin_password"`
	ResetPassword string        `mapstructure:"reset_password"`
	ErrorTTL      time.Duration `mapstructure:"error_ttl"`
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool          `mapstructure:"color_enabled"`
	TapeInterval time.Duration `mapstructure:"tape_interval"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/figtrack"
	}
	return filepath.Join(home, ".config", "figtrack")
}

// DataDir returns the directory holding the database and session file.
func DataDir(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return configDir
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	now := time.Now()
	v.SetDefault("cycle.policy", "month")
	v.SetDefault("cycle.year", now.Year())
	v.SetDefault("cycle.month", int(now.Month()))
	v.SetDefault("cycle.count", 22)
	v.SetDefault("feed.mode", "local")
	v.SetDefault("feed.timeout", "15s")
	v.SetDefault("capital.initial", 0.0)
	v.SetDefault("access.admin_login", "FIGADM")
	v.SetDefault("access.admin_password", "FIGADM")
	v.SetDefault("access.error_ttl", "2s")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.tape_interval", "1200ms")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FIGTRACK_FEED_MODE"); v != "" {
		cfg.Feed.Mode = v
	}
	if v := os.Getenv("FIGTRACK_RECORDS_URL"); v != "" {
		cfg.Feed.RecordsURL = v
	}
	if v := os.Getenv("FIGTRACK_CREDENTIALS_URL"); v != "" {
		cfg.Feed.CredentialsURL = v
	}
	if v := os.Getenv("FIGTRACK_CAPITAL_URL"); v != "" {
		cfg.Feed.CapitalURL = v
	}
	if v := os.Getenv("FIGTRACK_INITIAL_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Capital.Initial = f
		}
	}
	if v := os.Getenv("FIGTRACK_RESET_PASSWORD"); v != "" {
		cfg.Access.ResetPassword = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Cycle.Policy != "" && c.Cycle.Policy != "month" && c.Cycle.Policy != "count" {
		return fmt.Errorf("invalid cycle policy: %s (must be 'month' or 'count')", c.Cycle.Policy)
	}
	if c.Cycle.Month < 1 || c.Cycle.Month > 12 {
		return fmt.Errorf("cycle month must be between 1 and 12")
	}
	if c.Cycle.Policy == "count" {
		if c.Cycle.Count <= 0 {
			return fmt.Errorf("cycle count must be positive for the 'count' policy")
		}
		if c.Cycle.Start != "" {
			if _, err := time.Parse("2006-01-02", c.Cycle.Start); err != nil {
				return fmt.Errorf("invalid cycle start date: %s", c.Cycle.Start)
			}
		}
	}

	switch c.Feed.Mode {
	case "", "local":
	case "csv", "json":
		if c.Feed.RecordsURL == "" {
			return fmt.Errorf("feed mode %q requires records_url", c.Feed.Mode)
		}
	default:
		return fmt.Errorf("invalid feed mode: %s (must be 'local', 'csv' or 'json')", c.Feed.Mode)
	}

	for _, d := range c.Cycle.Holidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid holiday date: %s", d)
		}
	}
	return nil
}

// CycleStart resolves the configured start date for the fixed-count
// policy, falling back to the first of the cycle month.
func (c *Config) CycleStart() time.Time {
	if c.Cycle.Start != "" {
		if t, err := time.Parse("2006-01-02", c.Cycle.Start); err == nil {
			return t
		}
	}
	return time.Date(c.Cycle.Year, time.Month(c.Cycle.Month), 1, 0, 0, 0, 0, time.Local)
}

// UsesRemoteFeed reports whether entries come from a remote source.
func (c *Config) UsesRemoteFeed() bool {
	return c.Feed.Mode == "csv" || c.Feed.Mode == "json"
}
