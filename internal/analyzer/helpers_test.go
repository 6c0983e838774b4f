package analyzer

import (
	"math"
	"testing"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func ptr(v float64) *float64 { return &v }

func oktaTool() *catalog.Tool {
	return &catalog.Tool{
		Name: "Okta",
		Tiers: []catalog.Tier{
			{Name: "standard", Unlocks: []string{"group_management"}},
			{Name: "enterprise", Unlocks: []string{"group_management", "workflows"}},
		},
		Groups: []catalog.CapabilityGroup{
			{Key: "group_management", DisplayName: "Group Management", Capabilities: []string{"add_user_to_group", "list_groups"}},
			{Key: "workflows", DisplayName: "Workflows", Capabilities: []string{"run_flow"}},
		},
	}
}

func useCase(id string, rate, confidence float64, targets ...string) *catalog.UseCase {
	u := &catalog.UseCase{
		ID:              id,
		Name:            id,
		Category:        "access_management",
		RequiredTools:   []string{"Okta"},
		RequiredAPIs:    map[catalog.ToolKey][]string{"okta": {"group_management"}},
		AutomationRate:  rate,
		Confidence:      confidence,
		Effort:          catalog.EffortLow,
		TimeToValueDays: 5,
	}
	for _, t := range targets {
		u.TargetCategories = append(u.TargetCategories, catalog.NormalizeCategory(t))
	}
	return u
}

func newTestAnalyzer(t *testing.T, useCases ...*catalog.UseCase) *Analyzer {
	t.Helper()
	c, err := catalog.New([]*catalog.Tool{oktaTool()}, useCases)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return New(c)
}

func oktaStandard() []ToolIntegration {
	return []ToolIntegration{{Name: "Okta", Tier: "standard"}}
}
