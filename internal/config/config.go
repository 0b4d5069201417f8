// Package config loads and saves the rp configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
)

// Config holds all rp configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Rules      RulesConfig      `toml:"rules"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir          string `toml:"data_dir,omitempty"`
	DefaultDays      int    `toml:"default_days"`
	EarnLookbackDays int    `toml:"earn_lookback_days"`
}

// RulesConfig holds the point-rule constants. The specific numbers are
// inherited app behavior, not domain truths, so they live here rather
// than in code.
type RulesConfig struct {
	MonthlyEarnCap      int64 `toml:"monthly_earn_cap"`
	MonthEndDeduction   int64 `toml:"month_end_deduction"`
	DeductionMinBalance int64 `toml:"deduction_min_balance"`
	ForecastHorizonDays int   `toml:"forecast_horizon_days"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays:      30,
			EarnLookbackDays: 30,
		},
		Rules: RulesConfig{
			MonthlyEarnCap:      forecast.DefaultMonthlyEarnCap,
			MonthEndDeduction:   forecast.DefaultMonthEndDeduction,
			DeductionMinBalance: forecast.DefaultDeductionMinBalance,
			ForecastHorizonDays: forecast.DefaultHorizonDays,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ForecastRules converts the configured rule constants into the
// forecast package's rule set.
func (c Config) ForecastRules() forecast.Rules {
	return forecast.Rules{
		MonthlyEarnCap:      c.Rules.MonthlyEarnCap,
		MonthEndDeduction:   c.Rules.MonthEndDeduction,
		DeductionMinBalance: c.Rules.DeductionMinBalance,
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rp")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns where the ledger database lives when not
// overridden by config or flag.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "rp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "rp")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
