package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finrep-dev/finrep/internal/model"
)

// Config represents the top-level finrep.yaml configuration.
type Config struct {
	Business  BusinessConfig    `yaml:"business"`
	Reporting ReportingConfig   `yaml:"reporting"`
	Ledger    LedgerConfig      `yaml:"ledger"`
	Equity    []EquityClassRule `yaml:"equity_classes,omitempty"`
}

// BusinessConfig identifies the reporting entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// ReportingConfig controls the currency tag and rounding policy applied to
// every generated statement.
type ReportingConfig struct {
	Currency      string `yaml:"currency"`
	DecimalPlaces int32  `yaml:"decimal_places"`
}

// LedgerConfig locates the ledger database.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// EquityClassRule assigns an equity class to an account code. This replaces
// code-substring matching with an explicit chart-of-accounts mapping.
type EquityClassRule struct {
	Code  string            `yaml:"code"`
	Class model.EquityClass `yaml:"class"`
}

// Load reads a finrep.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new project.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Reporting: ReportingConfig{
			Currency:      "USD",
			DecimalPlaces: 2,
		},
		Ledger: LedgerConfig{
			Path: "ledger.db",
		},
	}
}

// EquityClassFor returns the configured equity class for an account code,
// or the empty class when no rule matches.
func (c *Config) EquityClassFor(code string) model.EquityClass {
	for _, rule := range c.Equity {
		if rule.Code == code {
			return rule.Class
		}
	}
	return ""
}
