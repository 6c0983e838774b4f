package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/deskflow/internal/store"
)

// saveTestReport runs analyze --save and returns the stored submission ID.
func saveTestReport(t *testing.T, intakePath string) string {
	t.Helper()
	withAnalyzeFlags(t, true, true)

	cmd, _ := newTestCmd()
	if err := runAnalyze(cmd, []string{intakePath}); err != nil {
		t.Fatalf("runAnalyze() failed: %v", err)
	}

	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() failed: %v", err)
	}
	defer st.Close()

	subs, err := st.ListSubmissions()
	if err != nil || len(subs) == 0 {
		t.Fatalf("expected a saved submission, got %v (err %v)", subs, err)
	}
	return subs[0].ID
}

func TestRunReportsList_Empty(t *testing.T) {
	setupEnv(t)

	cmd, buf := newTestCmd()
	if err := runReportsList(cmd, nil); err != nil {
		t.Fatalf("runReportsList() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No saved reports") {
		t.Errorf("expected empty message, got:\n%s", buf.String())
	}
}

func TestRunReports_Lifecycle(t *testing.T) {
	dir := setupEnv(t)
	id := saveTestReport(t, writeIntake(t, dir, testIntake))

	cmd, buf := newTestCmd()
	if err := runReportsList(cmd, nil); err != nil {
		t.Fatalf("runReportsList() failed: %v", err)
	}
	if !strings.Contains(buf.String(), id) || !strings.Contains(buf.String(), "Acme") {
		t.Errorf("list output missing saved report:\n%s", buf.String())
	}

	cmd, buf = newTestCmd()
	if err := runReportsShow(cmd, []string{id}); err != nil {
		t.Fatalf("runReportsShow() failed: %v", err)
	}
	for _, want := range []string{"Automation estimate for Acme", "Projected impact"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, buf.String())
		}
	}

	cmd, buf = newTestCmd()
	if err := runReportsDelete(cmd, []string{id}); err != nil {
		t.Fatalf("runReportsDelete() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Deleted report "+id) {
		t.Errorf("unexpected delete output:\n%s", buf.String())
	}

	cmd, _ = newTestCmd()
	if err := runReportsShow(cmd, []string{id}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRunReportsShow_JSON(t *testing.T) {
	dir := setupEnv(t)
	id := saveTestReport(t, writeIntake(t, dir, testIntake))

	old := reportsShowJSON
	reportsShowJSON = true
	defer func() { reportsShowJSON = old }()

	cmd, buf := newTestCmd()
	if err := runReportsShow(cmd, []string{id}); err != nil {
		t.Fatalf("runReportsShow() failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"okta-app-access"`) {
		t.Errorf("expected stored JSON, got:\n%s", buf.String())
	}
}

func TestRunReportsDelete_NotFound(t *testing.T) {
	dir := setupEnv(t)
	saveTestReport(t, writeIntake(t, dir, testIntake))

	cmd, _ := newTestCmd()
	if err := runReportsDelete(cmd, []string{"missing-id"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
