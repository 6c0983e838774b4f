package analyzer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

func TestAnalyze_OktaApplications(t *testing.T) {
	a := newTestAnalyzer(t, useCase("app-access", 0.8, 0.9, "applications"))

	report := a.Analyze(Input{
		TotalMonthlyTickets: 500,
		Tools:               oktaStandard(),
		Activities:          []Activity{{Category: "applications", MonthlyVolume: 100, AvgResolutionHours: 1.5}},
	})

	if len(report.Matches) != 1 || report.Matches[0].ID != "app-access" {
		t.Fatalf("expected app-access match, got %+v", report.Matches)
	}
	if !approx(report.Projection.AutomatableTickets, 80) {
		t.Errorf("AutomatableTickets = %v, want 80", report.Projection.AutomatableTickets)
	}
	if !approx(report.Projection.HoursSaved, 120) {
		t.Errorf("HoursSaved = %v, want 120", report.Projection.HoursSaved)
	}
	if !approx(report.Projection.AutomatablePct, 16) {
		t.Errorf("AutomatablePct = %v, want 16", report.Projection.AutomatablePct)
	}
}

func TestAnalyze_CeilingBelowAllocation(t *testing.T) {
	a := newTestAnalyzer(t, useCase("app-access", 0.8, 0.9, "applications"))

	report := a.Analyze(Input{
		TotalMonthlyTickets: 50,
		Tools:               oktaStandard(),
		Activities:          []Activity{{Category: "applications", MonthlyVolume: 100, AvgResolutionHours: 1.5}},
	})

	p := report.Projection
	if p.AutomatableTickets != 50 || p.AutomatablePct != 100.0 {
		t.Errorf("tickets = %v (%v%%), want 50 (100%%)", p.AutomatableTickets, p.AutomatablePct)
	}
	if !approx(p.HoursSaved, 120*50.0/80.0) {
		t.Errorf("HoursSaved = %v, want %v", p.HoursSaved, 120*50.0/80.0)
	}
	// Matches keep their unclamped allocation.
	if !approx(report.Matches[0].MonthlyDeflection, 80) {
		t.Errorf("match deflection = %v, want 80", report.Matches[0].MonthlyDeflection)
	}
}

func TestAnalyze_UnknownToolDoesNotHalt(t *testing.T) {
	a := newTestAnalyzer(t, useCase("app-access", 0.8, 0.9, "applications"))

	report := a.Analyze(Input{
		TotalMonthlyTickets: 100,
		Tools:               []ToolIntegration{{Name: "NoSuchTool", Tier: "pro"}},
		Activities:          []Activity{{Category: "applications", MonthlyVolume: 100, AvgResolutionHours: 1}},
	})

	if len(report.Feasibility) != 1 || len(report.Feasibility[0].EnabledUseCases) != 0 {
		t.Errorf("Feasibility = %+v", report.Feasibility)
	}
	if len(report.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(report.Matches))
	}
	if report.Projection.AutomatableTickets != 0 {
		t.Errorf("AutomatableTickets = %v, want 0", report.Projection.AutomatableTickets)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	a := New(c)
	in := Input{
		TotalMonthlyTickets: 900,
		Tools: []ToolIntegration{
			{Name: "Okta", Tier: "enterprise"},
			{Name: "Microsoft Entra ID", Tier: "p1"},
			{Name: "Jira Service Management", Tier: "standard"},
			{Name: "Slack", Tier: "business plus"},
		},
		Activities: []Activity{
			{Category: "Password Reset", MonthlyVolume: 300, AvgResolutionHours: 0.5},
			{Category: "Applications", MonthlyVolume: 200, AvgResolutionHours: 1.5},
			{Category: "Onboarding", MonthlyVolume: 40, AvgResolutionHours: 3},
			{Category: "How-to", MonthlyVolume: 250, AvgResolutionHours: 0.75},
			{Category: "Hardware", MonthlyVolume: 110, AvgResolutionHours: 2},
		},
		Financials: DefaultFinancials(),
	}

	first, err := json.Marshal(a.Analyze(in))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(a.Analyze(in))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two runs over identical input should produce identical output")
	}
}

func TestExplain(t *testing.T) {
	blocked := useCase("needs-workflows", 0.9, 0.9, "applications")
	blocked.RequiredAPIs = map[catalog.ToolKey][]string{"okta": {"workflows"}}
	a := newTestAnalyzer(t,
		useCase("app-access", 0.8, 0.9, "applications"),
		useCase("hardware", 0.8, 0.9, "hardware"),
		useCase("app-access-weak", 0.1, 0.1, "applications"),
		blocked,
	)
	in := Input{
		TotalMonthlyTickets: 100,
		Tools:               oktaStandard(),
		Activities:          []Activity{{Category: "applications", MonthlyVolume: 100, AvgResolutionHours: 1}},
	}

	tests := []struct {
		id        string
		matched   bool
		eligible  bool
		reasonHas string
	}{
		{"app-access", true, true, "immediate"},
		{"hardware", false, true, "no reported ticket category"},
		{"needs-workflows", false, false, "okta: workflows"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			exp, err := a.Explain(in, tt.id)
			if err != nil {
				t.Fatalf("Explain() failed: %v", err)
			}
			if (exp.Match != nil) != tt.matched {
				t.Errorf("matched = %v, want %v", exp.Match != nil, tt.matched)
			}
			if exp.Eligible != tt.eligible {
				t.Errorf("eligible = %v, want %v", exp.Eligible, tt.eligible)
			}
			if !strings.Contains(strings.ToLower(exp.Reason), tt.reasonHas) {
				t.Errorf("reason %q should contain %q", exp.Reason, tt.reasonHas)
			}
		})
	}

	if _, err := a.Explain(in, "missing"); !errors.Is(err, ErrUnknownUseCase) {
		t.Errorf("expected ErrUnknownUseCase, got %v", err)
	}
}

func TestExplain_NotIntegrated(t *testing.T) {
	a := newTestAnalyzer(t, useCase("app-access", 0.8, 0.9, "applications"))

	exp, err := a.Explain(Input{}, "app-access")
	if err != nil {
		t.Fatal(err)
	}
	if exp.Eligible || !strings.Contains(exp.Reason, "not integrated") {
		t.Errorf("unexpected explanation: %+v", exp)
	}
}
