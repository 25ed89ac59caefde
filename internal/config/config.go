package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the wallet configuration file at the wallet root.
const FileName = "walletguard.yaml"

// Environment variables that override the file.
const (
	EnvCurrency = "WALLETGUARD_CURRENCY"
	EnvLocale   = "WALLETGUARD_LOCALE"
)

// Config represents the top-level walletguard.yaml configuration.
type Config struct {
	Owner    OwnerConfig    `yaml:"owner"`
	Currency CurrencyConfig `yaml:"currency"`
	Cards    CardsConfig    `yaml:"cards"`
	Summary  SummaryConfig  `yaml:"summary"`
}

// OwnerConfig identifies who the wallet belongs to.
type OwnerConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
}

// CurrencyConfig controls how amounts are displayed.
type CurrencyConfig struct {
	Code   string `yaml:"code"`   // ISO 4217, e.g. "USD"
	Locale string `yaml:"locale"` // BCP 47, e.g. "en-US"
}

// CardsConfig holds defaults for card purchases.
type CardsConfig struct {
	DefaultInstallments int `yaml:"default_installments"`
}

// SummaryConfig controls the summary report.
type SummaryConfig struct {
	AlertUtilization float64 `yaml:"alert_utilization"` // percent; cards above are flagged
}

// Load reads a walletguard.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWallet reads the config of the wallet at dir, then applies overrides
// from dir/.env and the process environment. Process variables win over .env.
func LoadWallet(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	env, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return env[key]
	}
	if v := lookup(EnvCurrency); v != "" {
		cfg.Currency.Code = v
	}
	if v := lookup(EnvLocale); v != "" {
		cfg.Currency.Locale = v
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that would make reports meaningless.
func (c *Config) Validate() error {
	if c.Currency.Code == "" {
		return errors.New("config: currency.code is required")
	}
	if c.Cards.DefaultInstallments < 0 {
		return fmt.Errorf("config: cards.default_installments must not be negative, got %d", c.Cards.DefaultInstallments)
	}
	if c.Summary.AlertUtilization < 0 {
		return fmt.Errorf("config: summary.alert_utilization must not be negative, got %v", c.Summary.AlertUtilization)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new wallet.
func Default(owner string) *Config {
	return &Config{
		Owner: OwnerConfig{
			Name: owner,
		},
		Currency: CurrencyConfig{
			Code:   "USD",
			Locale: "en-US",
		},
		Cards: CardsConfig{
			DefaultInstallments: 1,
		},
		Summary: SummaryConfig{
			AlertUtilization: 80,
		},
	}
}
