// Package config provides configuration file parsing for deskflow.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
)

// FileName is the config file read from the config directory.
const FileName = "config.yaml"

// Dir returns the deskflow config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/deskflow if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "deskflow"), nil
}

// Config is the on-disk configuration. Zero values mean "use the default".
type Config struct {
	DBPath     string              `yaml:"db_path"`
	CatalogDir string              `yaml:"catalog_dir"`
	Financials analyzer.Financials `yaml:"financials"`
	Policy     analyzer.Policy     `yaml:"policy"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Financials: analyzer.DefaultFinancials(),
		Policy:     analyzer.DefaultPolicy(),
	}
}

// Load reads {dir}/config.yaml over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	envOverride(&cfg.DBPath, "DESKFLOW_DB")
	envOverride(&cfg.CatalogDir, "DESKFLOW_CATALOG_DIR")
	if err := envOverrideFloat(&cfg.Financials.AnnualCost, "DESKFLOW_ANNUAL_COST"); err != nil {
		return nil, err
	}
	if err := envOverrideFloat(&cfg.Financials.CaptureRate, "DESKFLOW_CAPTURE_RATE"); err != nil {
		return nil, err
	}
	if err := envOverrideFloat(&cfg.Financials.HoursPerFTE, "DESKFLOW_HOURS_PER_FTE"); err != nil {
		return nil, err
	}

	cfg.Financials = cfg.Financials.WithDefaults()
	return cfg, nil
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envOverrideFloat(target *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*target = f
	return nil
}
