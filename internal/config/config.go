package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ExtractedDir   string        `yaml:"extracted_dir"`
	TransformedDir string        `yaml:"transformed_dir"`
	Warehouse      string        `yaml:"warehouse"`
	Report         string        `yaml:"report"`
	Store          string        `yaml:"store"`
	Source         *SourceConfig `yaml:"source,omitempty"`
}

// SourceConfig describes the optional MySQL system the raw tables are
// extracted from before a run.
type SourceConfig struct {
	DSN    string   `yaml:"dsn"`
	Tables []string `yaml:"tables"`
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Report == "" {
		c.Report = "DATA_QUALITY_REPORT.md"
	}
	if c.Store == "" {
		c.Store = "audit.db"
	}
}

func (c *Config) validate() error {
	if c.ExtractedDir == "" {
		return errors.New("extracted_dir is required")
	}
	if c.TransformedDir == "" {
		return errors.New("transformed_dir is required")
	}
	if c.Warehouse == "" {
		return errors.New("warehouse is required")
	}
	if c.Source != nil {
		if c.Source.DSN == "" {
			return errors.New("source.dsn is required when source is set")
		}
		if len(c.Source.Tables) == 0 {
			return errors.New("source.tables must list at least one table")
		}
	}
	return nil
}
