// Package config loads the fintrack configuration from a YAML (or JSON) file
// with environment variable overrides, mirroring how the rest of the tool
// treats files: absent config means defaults, not an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Backend selects how ledgers are persisted.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir        string `json:"dir" yaml:"dir"`
		Backend    string `json:"backend" yaml:"backend"` // "csv" or "sqlite"
		SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	} `json:"data" yaml:"data"`

	Reports struct {
		Dir        string `json:"dir" yaml:"dir"`
		ExportDir  string `json:"export_dir" yaml:"export_dir"`
		Currency   string `json:"currency" yaml:"currency"`
		Cron       string `json:"cron" yaml:"cron"`
		RunOnStart bool   `json:"run_on_start" yaml:"run_on_start"`
	} `json:"reports" yaml:"reports"`

	Server struct {
		Listen string `json:"listen" yaml:"listen"`
	} `json:"server" yaml:"server"`

	Log struct {
		File  string `json:"file,omitempty" yaml:"file,omitempty"`
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Data.Dir = "data"
	cfg.Data.Backend = BackendCSV
	cfg.Data.SQLitePath = "data/fintrack.sqlite"
	cfg.Reports.Dir = "reports"
	cfg.Reports.ExportDir = "pdf_reports"
	cfg.Reports.Currency = "Rp"
	cfg.Reports.Cron = "0 5 0 * * *" // daily, five past midnight
	cfg.Reports.RunOnStart = true
	cfg.Server.Listen = ":8787"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads config from a file (YAML first, JSON fallback), then applies
// environment overrides. A missing file keeps the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if yerr := yaml.Unmarshal(data, cfg); yerr != nil {
			if jerr := json.Unmarshal(data, cfg); jerr != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", yerr)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv applies FINTRACK_* environment overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FINTRACK_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("FINTRACK_BACKEND"); v != "" {
		cfg.Data.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("FINTRACK_SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("FINTRACK_REPORTS_DIR"); v != "" {
		cfg.Reports.Dir = v
	}
	if v := os.Getenv("FINTRACK_EXPORT_DIR"); v != "" {
		cfg.Reports.ExportDir = v
	}
	if v := os.Getenv("FINTRACK_CURRENCY"); v != "" {
		cfg.Reports.Currency = v
	}
	if v := os.Getenv("FINTRACK_REPORT_CRON"); v != "" {
		cfg.Reports.Cron = v
	}
	if v := os.Getenv("FINTRACK_REPORT_ON_START"); v != "" {
		cfg.Reports.RunOnStart = cast.ToBool(v)
	}
	if v := os.Getenv("FINTRACK_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("FINTRACK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("FINTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// SaveToFile writes the config (YAML for .yaml/.yml, JSON otherwise).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.Backend != BackendCSV && c.Data.Backend != BackendSQLite {
		return fmt.Errorf("data.backend must be %q or %q", BackendCSV, BackendSQLite)
	}
	if c.Data.Backend == BackendSQLite && c.Data.SQLitePath == "" {
		return fmt.Errorf("data.sqlite_path required for sqlite backend")
	}
	if c.Reports.Dir == "" {
		return fmt.Errorf("reports.dir is required")
	}
	if c.Reports.ExportDir == "" {
		return fmt.Errorf("reports.export_dir is required")
	}
	if c.Reports.Currency == "" {
		return fmt.Errorf("reports.currency is required")
	}
	if c.Reports.Cron == "" {
		return fmt.Errorf("reports.cron is required")
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	return nil
}
