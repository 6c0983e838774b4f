package output

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/catalog"
	"github.com/blackwell-systems/deskflow/internal/store"
)

func TestRenderMatchTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name     string
		matches  []analyzer.MatchedUseCase
		contains []string
	}{
		{
			name:     "empty",
			matches:  nil,
			contains: []string{"No applicable automations"},
		},
		{
			name: "single match",
			matches: []analyzer.MatchedUseCase{{
				Name:              "Application access via group assignment",
				FitScore:          95,
				MonthlyDeflection: 1280.4,
				MonthlyHoursSaved: 1920.56,
				Confidence:        0.85,
				Effort:            catalog.EffortLow,
				Priority:          analyzer.PriorityImmediate,
			}},
			contains: []string{"Application access via group", "95", "1,280", "1,920.6", "85%", "low", "immediate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderMatchTable(tt.matches)
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("output missing %q:\n%s", want, result)
				}
			}
		})
	}
}

func TestRenderFeasibilityTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := RenderFeasibilityTable([]analyzer.FeasibilityResult{
		{Tool: "Okta", Tier: "standard", Capabilities: []string{"Group Management"}, EnabledUseCases: []string{"a"}, Confidence: 0.9,
			UpgradeHints: []string{"Upgrade Okta to enterprise to unlock Workflows"}},
		{Tool: "NoSuchTool", Tier: "pro", Notes: []string{"configuration not found for tool NoSuchTool"}},
	})

	for _, want := range []string{"Okta", "Group Management", "0.90", "NoSuchTool", "—", "configuration not found", "Upgrade Okta"} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q:\n%s", want, result)
		}
	}

	if got := RenderFeasibilityTable(nil); !strings.Contains(got, "No tools") {
		t.Errorf("empty output = %q", got)
	}
}

func TestRenderProjection(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := RenderProjection(analyzer.ROIProjection{
		TotalTickets:          50,
		AutomatableTickets:    50,
		AutomatablePct:        100,
		RawAutomatableTickets: 80,
		Clamped:               true,
		HoursSaved:            75,
		ExpectedHours:         67.5,
		P70Hours:              60,
		P90Hours:              52.5,
		ConfidencePct:         90,
		CapacityFTE:           0.45,
		BudgetFTE:             0.225,
		AnnualValue:           decimal.RequireFromString("22500"),
	})

	for _, want := range []string{"50 of 50", "100.0%", "capped from 80", "67.5 / 60.0 / 52.5", "90%", "0.45", "$22,500.00"} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q:\n%s", want, result)
		}
	}
}

func TestRenderFitBreakdown(t *testing.T) {
	result := RenderFitBreakdown(analyzer.MatchedUseCase{
		FitScore: 95,
		Fit:      analyzer.FitBreakdown{Base: 40, Volume: 30, TTR: 15, Effort: 10},
		Effort:   catalog.EffortLow,
		Allocations: []analyzer.Allocation{
			{Category: "applications", OriginalVolume: 100, Tickets: 80, Hours: 120},
		},
	})

	for _, want := range []string{"40.0/40", "30.0/30", "15.0/20", "10.0/10", "95.0", "80 of 100 tickets"} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q:\n%s", want, result)
		}
	}
}

func TestRenderSubmissionTable(t *testing.T) {
	subs := []*store.Submission{
		{ID: "6f1c", Organization: "Acme", CreatedAt: time.Now().Add(-2 * time.Hour), Report: []byte(`{}`)},
		{ID: "9a2b", Organization: "Globex", CreatedAt: time.Now()},
	}

	result := RenderSubmissionTable(subs)
	for _, want := range []string{"6f1c", "Acme", "2 hours ago", "✓", "Globex", "pending"} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q:\n%s", want, result)
		}
	}
}

func TestRenderCatalog(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	if out := RenderToolCatalog(c.Tools); !strings.Contains(out, "Okta") || !strings.Contains(out, "enterprise") {
		t.Errorf("tool catalog output:\n%s", out)
	}
	if out := RenderUseCaseCatalog(c.UseCases); !strings.Contains(out, "okta-app-access") {
		t.Errorf("use-case catalog output:\n%s", out)
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{formatCount(1234.6), "1,235"},
		{formatCount(0), "0"},
		{formatHours(1234.56), "1,234.6"},
		{formatMoney(decimal.RequireFromString("36000")), "$36,000.00"},
		{truncate("abcdefgh", 5), "ab..."},
		{truncate("abc", 5), "abc"},
		{formatRelativeTime(time.Time{}), "never"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
