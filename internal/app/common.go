package app

import (
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/catalog"
	"github.com/blackwell-systems/deskflow/internal/config"
	"github.com/blackwell-systems/deskflow/internal/intake"
	"github.com/blackwell-systems/deskflow/internal/store"
)

// loadConfig reads the config from --config or the default config dir.
func loadConfig() (*config.Config, error) {
	dir := configDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		dir = d
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// getDBPath resolves the database path: --db, then config, then
// ~/.deskflow/deskflow.db.
func getDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}

	dir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "deskflow.db"), nil
}

// openStore opens the submission database. When create is set the schema
// is created if missing.
func openStore(cfg *config.Config, create bool) (*store.Store, error) {
	path, err := getDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if create {
		if err := st.CreateSchema(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create database schema: %w", err)
		}
	}
	return st, nil
}

// loadCatalog resolves the catalog: explicit dir, then config, then the
// embedded default.
func loadCatalog(dir string, cfg *config.Config) (*catalog.Catalog, error) {
	if dir == "" && cfg != nil {
		dir = cfg.CatalogDir
	}
	if dir == "" {
		return catalog.Default()
	}

	logger.Debug("loading catalog", "dir", dir)
	c, err := catalog.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", dir, err)
	}
	return c, nil
}

func newAnalyzer(c *catalog.Catalog, cfg *config.Config) *analyzer.Analyzer {
	return analyzer.New(c,
		analyzer.WithPolicy(cfg.Policy),
		analyzer.WithLogger(logger))
}

// financialFlags carries per-command overrides. Zero means unset.
type financialFlags struct {
	annualCost  float64
	captureRate float64
	hoursPerFTE float64
}

// apply layers the flags over fin. Flags win over intake and config.
func (f financialFlags) apply(fin analyzer.Financials) analyzer.Financials {
	if f.annualCost > 0 {
		fin.AnnualCost = f.annualCost
	}
	if f.captureRate > 0 {
		fin.CaptureRate = f.captureRate
	}
	if f.hoursPerFTE > 0 {
		fin.HoursPerFTE = f.hoursPerFTE
	}
	return fin.WithDefaults()
}

// prepared bundles everything a run needs.
type prepared struct {
	cfg      *config.Config
	intake   *intake.Intake
	input    analyzer.Input
	analyzer *analyzer.Analyzer
}

// prepare loads config, intake and catalog for one analysis run.
func prepare(intakePath, catalogDir string, flags financialFlags) (*prepared, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	in, err := intake.Load(intakePath)
	if err != nil {
		return nil, err
	}

	c, err := loadCatalog(catalogDir, cfg)
	if err != nil {
		return nil, err
	}

	input := in.Input(cfg.Financials)
	input.Financials = flags.apply(input.Financials)

	return &prepared{
		cfg:      cfg,
		intake:   in,
		input:    input,
		analyzer: newAnalyzer(c, cfg),
	}, nil
}
