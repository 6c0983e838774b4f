package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

const testIntake = `organization: Acme
total_monthly_tickets: 400
tools:
  - name: okta
    tier: Standard
activities:
  - category: App access
    monthly_volume: 100
    avg_resolution_hours: 0.5
  - category: Password reset
    monthly_volume: 200
    avg_resolution_hours: 0.25
`

// setupEnv isolates config and database state for one test.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, key := range []string{"DESKFLOW_DB", "DESKFLOW_CATALOG_DIR", "DESKFLOW_ANNUAL_COST",
		"DESKFLOW_CAPTURE_RATE", "DESKFLOW_HOURS_PER_FTE"} {
		t.Setenv(key, "")
	}

	oldDB, oldConfig := dbPath, configDir
	dbPath = filepath.Join(dir, "test.db")
	configDir = filepath.Join(dir, "config")
	t.Cleanup(func() {
		dbPath = oldDB
		configDir = oldConfig
	})

	return dir
}

func writeIntake(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "intake.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write intake: %v", err)
	}
	return path
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

// withAnalyzeFlags sets analyze flags for the duration of a test.
func withAnalyzeFlags(t *testing.T, asJSON, save bool) {
	t.Helper()
	oldJSON, oldSave, oldFin, oldDir := analyzeJSON, analyzeSave, analyzeFinancials, analyzeCatalogDir
	analyzeJSON, analyzeSave = asJSON, save
	analyzeFinancials = financialFlags{}
	analyzeCatalogDir = ""
	t.Cleanup(func() {
		analyzeJSON, analyzeSave, analyzeFinancials, analyzeCatalogDir = oldJSON, oldSave, oldFin, oldDir
	})
}
