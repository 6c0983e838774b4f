package analyzer

import (
	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// ToolIntegration is a tool the organization has integrated and the
// license tier it holds.
type ToolIntegration struct {
	Name string `json:"name" yaml:"name"`
	Tier string `json:"tier" yaml:"tier"`
}

// Activity is one reported ticket category.
type Activity struct {
	Category           string  `json:"category"`
	MonthlyVolume      int     `json:"monthly_volume"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
}

// FeasibilityResult is the resolver's verdict for a single tool.
type FeasibilityResult struct {
	Tool            string   `json:"tool"`
	Tier            string   `json:"tier"`
	Capabilities    []string `json:"capabilities"`     // display names of unlocked groups
	RawCapabilities []string `json:"raw_capabilities"` // operations inside those groups
	EnabledUseCases []string `json:"enabled_use_cases"`
	MissingAPIs     []string `json:"missing_apis"`
	UpgradeHints    []string `json:"upgrade_hints"`
	Notes           []string `json:"notes,omitempty"`
	Confidence      float64  `json:"confidence"`
}

// Priority is the rollout tier of a matched use-case.
type Priority string

const (
	PriorityImmediate Priority = "immediate"
	PriorityQuickWin  Priority = "quick_win"
	PriorityFuture    Priority = "future"
)

// FitBreakdown holds the four additive fit-score components.
type FitBreakdown struct {
	Base   float64 `json:"base"`   // 0-40 points
	Volume float64 `json:"volume"` // 0-30 points
	TTR    float64 `json:"ttr"`    // 0-20 points
	Effort float64 `json:"effort"` // 3-10 points
}

// Total returns the sum of all components.
func (f FitBreakdown) Total() float64 {
	return f.Base + f.Volume + f.TTR + f.Effort
}

// Allocation is the share of one reported category claimed by a use-case.
type Allocation struct {
	Category       string  `json:"category"`
	OriginalVolume int     `json:"original_volume"`
	Tickets        float64 `json:"tickets"`
	Hours          float64 `json:"hours"`
}

// MatchedUseCase is a use-case that received a non-zero allocation.
// Deflection and hours are left unrounded.
type MatchedUseCase struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Category          string         `json:"category"`
	FitScore          float64        `json:"fit_score"`
	Fit               FitBreakdown   `json:"fit_breakdown"`
	MonthlyDeflection float64        `json:"estimated_monthly_deflection"`
	MonthlyHoursSaved float64        `json:"estimated_hours_saved"`
	Confidence        float64        `json:"confidence"`
	Effort            catalog.Effort `json:"effort"`
	TimeToValueDays   int            `json:"time_to_value_days"`
	Prerequisites     []string       `json:"prerequisites"`
	Workflow          []string       `json:"workflow"`
	Priority          Priority       `json:"priority"`
	RequiredTools     []string       `json:"required_tools"`
	Allocations       []Allocation   `json:"allocations"`
}

// CategoryImpact is the per use-case-category rollup.
type CategoryImpact struct {
	Category   string  `json:"category"`
	Tickets    float64 `json:"tickets"`
	Hours      float64 `json:"hours"`
	Confidence float64 `json:"confidence"`
	UseCases   int     `json:"use_cases"`
}

// ROIProjection is the organization-level rollup of all matches.
type ROIProjection struct {
	TotalTickets          int              `json:"total_monthly_tickets"`
	AutomatableTickets    float64          `json:"automatable_tickets"`
	AutomatablePct        float64          `json:"automatable_pct"`
	RawAutomatableTickets float64          `json:"raw_automatable_tickets"`
	RawHoursSaved         float64          `json:"raw_hours_saved"`
	Clamped               bool             `json:"clamped"`
	HoursSaved            float64          `json:"total_hours_saved"`
	ExpectedHours         float64          `json:"expected_hours"`
	P70Hours              float64          `json:"p70_hours"`
	P90Hours              float64          `json:"p90_hours"`
	CapacityFTE           float64          `json:"capacity_fte"`
	BudgetFTE             float64          `json:"budget_fte"`
	AnnualValue           decimal.Decimal  `json:"annual_value"`
	Confidence            float64          `json:"confidence"`
	ConfidencePct         float64          `json:"confidence_pct"`
	Categories            []CategoryImpact `json:"categories"`
}

// Financials parameterizes the budget conversion.
type Financials struct {
	AnnualCost  float64 `json:"annual_cost" yaml:"annual_cost"`     // fully loaded cost of one FTE
	CaptureRate float64 `json:"capture_rate" yaml:"capture_rate"`   // fraction of saved time that becomes real capacity
	HoursPerFTE float64 `json:"hours_per_fte" yaml:"hours_per_fte"` // effective working hours per year
}

// Input is everything one analysis run needs besides the catalog.
type Input struct {
	TotalMonthlyTickets int               `json:"total_monthly_tickets"`
	Tools               []ToolIntegration `json:"tools"`
	Activities          []Activity        `json:"activities"`
	Financials          Financials        `json:"financials"`
}

// Report is the full pipeline output.
type Report struct {
	Feasibility []FeasibilityResult `json:"feasibility"`
	Matches     []MatchedUseCase    `json:"matches"`
	Projection  ROIProjection       `json:"projection"`
}
