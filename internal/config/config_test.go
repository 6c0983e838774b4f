package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() failed: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "deskflow") {
		t.Errorf("Dir() = %s", dir)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Financials.AnnualCost != 100000 || cfg.Financials.CaptureRate != 0.5 || cfg.Financials.HoursPerFTE != 1800 {
		t.Errorf("Financials = %+v, want defaults", cfg.Financials)
	}
	if cfg.Policy.P70Offset != 0.10 || cfg.Policy.P90Offset != 0.20 {
		t.Errorf("Policy = %+v, want defaults", cfg.Policy)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
db_path: /var/lib/deskflow.db
financials:
  capture_rate: 0.6
policy:
  p70_offset: 0.15
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DESKFLOW_ANNUAL_COST", "150000")
	t.Setenv("DESKFLOW_CATALOG_DIR", "/etc/deskflow/catalog")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DBPath != "/var/lib/deskflow.db" {
		t.Errorf("DBPath = %s", cfg.DBPath)
	}
	if cfg.CatalogDir != "/etc/deskflow/catalog" {
		t.Errorf("CatalogDir = %s", cfg.CatalogDir)
	}
	if cfg.Financials.CaptureRate != 0.6 {
		t.Errorf("CaptureRate = %v, want 0.6", cfg.Financials.CaptureRate)
	}
	if cfg.Financials.AnnualCost != 150000 {
		t.Errorf("AnnualCost = %v, want env override 150000", cfg.Financials.AnnualCost)
	}
	if cfg.Financials.HoursPerFTE != 1800 {
		t.Errorf("HoursPerFTE = %v, want default 1800", cfg.Financials.HoursPerFTE)
	}
	if cfg.Policy.P70Offset != 0.15 || cfg.Policy.P90Offset != 0.20 {
		t.Errorf("Policy = %+v", cfg.Policy)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("DESKFLOW_CAPTURE_RATE", "half")
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "DESKFLOW_CAPTURE_RATE") {
		t.Errorf("expected error naming the variable, got %v", err)
	}
}
