package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/spf13/cobra"
)

func TestRunExplain_MissingArgError(t *testing.T) {
	// Temporary root so the global command tree stays untouched.
	root := &cobra.Command{Use: "deskflow", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(explainCmd)

	var errBuf bytes.Buffer
	root.SetErr(&errBuf)
	root.SetArgs([]string{"explain", "intake.yaml"})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected an error when the use-case ID is missing, got nil")
	}
	if !strings.Contains(err.Error(), "missing argument") {
		t.Errorf("error should mention the missing argument, got: %q", err.Error())
	}
}

func TestRunExplain(t *testing.T) {
	dir := setupEnv(t)
	path := writeIntake(t, dir, testIntake)

	tests := []struct {
		name      string
		useCaseID string
		want      []string
	}{
		{
			name:      "matched",
			useCaseID: "okta-app-access",
			want:      []string{"matched, immediate priority", "Eligibility", "App access", "Workflow:"},
		},
		{
			name:      "tier lacks capability",
			useCaseID: "okta-password-reset",
			want:      []string{"not eligible", "Okta: password_management"},
		},
		{
			name:      "tool not integrated",
			useCaseID: "entra-sspr",
			want:      []string{"Microsoft Entra ID (not integrated)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCmd()
			if err := runExplain(cmd, []string{path, tt.useCaseID}); err != nil {
				t.Fatalf("runExplain() failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestRunExplain_UnknownUseCase(t *testing.T) {
	dir := setupEnv(t)
	path := writeIntake(t, dir, testIntake)

	cmd, _ := newTestCmd()
	err := runExplain(cmd, []string{path, "no-such-use-case"})
	if !errors.Is(err, analyzer.ErrUnknownUseCase) {
		t.Fatalf("expected ErrUnknownUseCase, got %v", err)
	}
	if !strings.Contains(err.Error(), "deskflow catalog use-cases") {
		t.Errorf("error should point at the catalog command, got %q", err.Error())
	}
}
