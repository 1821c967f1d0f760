package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AIConfig holds settings for the engineer recommendation client.
type AIConfig struct {
	Model             string `mapstructure:"model" yaml:"model"`
	MaxTokens         int    `mapstructure:"max_tokens" yaml:"max_tokens"`
	BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
	DebounceMs        int    `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// SeedConfig controls the demo data loaded at start-up.
type SeedConfig struct {
	// AnnualItemCount is how many service items a new Annual Service gets.
	AnnualItemCount int `mapstructure:"annual_item_count" yaml:"annual_item_count"`

	// RandomSeed fixes the item generator; 0 means seed from the clock.
	RandomSeed int64 `mapstructure:"random_seed" yaml:"random_seed"`

	// DemoOrders loads the sample work orders and annual services.
	DemoOrders bool `mapstructure:"demo_orders" yaml:"demo_orders"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Environment string     `mapstructure:"environment" yaml:"environment"`
	AI          AIConfig   `mapstructure:"ai" yaml:"ai"`
	Seed        SeedConfig `mapstructure:"seed" yaml:"seed"`
	Log         LogConfig  `mapstructure:"log" yaml:"log"`
}

// configDir returns ~/.config/fieldservice, falling back to the working
// directory when the home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "fieldservice")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/fieldservice/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Environment: "development",
		AI: AIConfig{
			Model:             "claude-sonnet-4-20250514",
			MaxTokens:         512,
			BaseURL:           "https://api.anthropic.com",
			DebounceMs:        1000,
			RequestsPerMinute: 30,
		},
		Seed: SeedConfig{
			AnnualItemCount: 25,
			DemoOrders:      true,
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(configDir(), "fieldservice.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("environment", defaults.Environment)
	v.SetDefault("ai.model", defaults.AI.Model)
	v.SetDefault("ai.max_tokens", defaults.AI.MaxTokens)
	v.SetDefault("ai.base_url", defaults.AI.BaseURL)
	v.SetDefault("ai.debounce_ms", defaults.AI.DebounceMs)
	v.SetDefault("ai.requests_per_minute", defaults.AI.RequestsPerMinute)
	v.SetDefault("seed.annual_item_count", defaults.Seed.AnnualItemCount)
	v.SetDefault("seed.random_seed", defaults.Seed.RandomSeed)
	v.SetDefault("seed.demo_orders", defaults.Seed.DemoOrders)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.path", defaults.Log.Path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Seed.AnnualItemCount < 0 {
		cfg.Seed.AnnualItemCount = defaults.Seed.AnnualItemCount
	}
	if cfg.AI.DebounceMs <= 0 {
		cfg.AI.DebounceMs = defaults.AI.DebounceMs
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("environment", cfg.Environment)
	v.Set("ai", cfg.AI)
	v.Set("seed", cfg.Seed)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
