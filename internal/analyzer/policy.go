package analyzer

// Fit-score weights. A use-case that clears eligibility starts at FitBase
// and earns up to 60 more points for volume, resolution time and effort.
const (
	FitBase          = 40.0
	FitVolumeMax     = 30.0
	FitVolumePivot   = 50.0 // monthly tickets that earn the full volume score
	FitTTRMax        = 20.0
	FitTTRPivotHours = 2.0 // average hours that earn the full TTR score
	FitEffortLow     = 10.0
	FitEffortMedium  = 6.0
	FitEffortHigh    = 3.0
)

// Priority thresholds, in days of time-to-value.
const (
	ImmediateMaxDays = 7
	QuickWinMaxDays  = 21
)

// Tool-level resolver confidence.
const (
	ContributingToolConfidence = 0.90
	IdleToolConfidence         = 0.50
	UnknownToolConfidence      = 0.0
)

// Policy holds the tunable constants of the aggregation stage. None of
// these numbers has a documented derivation; they are kept configurable
// rather than baked in.
type Policy struct {
	// DefaultConfidence is used when there are no hours to weight by.
	DefaultConfidence float64 `yaml:"default_confidence"`
	P70Offset         float64 `yaml:"p70_offset"`
	P90Offset         float64 `yaml:"p90_offset"`
	P70Floor          float64 `yaml:"p70_floor"`
	P90Floor          float64 `yaml:"p90_floor"`
	// CapacityHoursPerFTE is the round-number denominator of capacity FTE.
	CapacityHoursPerFTE float64 `yaml:"capacity_hours_per_fte"`
}

// DefaultPolicy returns the standard policy constants.
func DefaultPolicy() Policy {
	return Policy{
		DefaultConfidence:   0.7,
		P70Offset:           0.10,
		P90Offset:           0.20,
		P70Floor:            0.4,
		P90Floor:            0.3,
		CapacityHoursPerFTE: 2000,
	}
}

// withDefaults fills zero fields from DefaultPolicy so a partially
// specified policy never divides by zero.
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.DefaultConfidence <= 0 {
		p.DefaultConfidence = d.DefaultConfidence
	}
	if p.P70Offset <= 0 {
		p.P70Offset = d.P70Offset
	}
	if p.P90Offset <= 0 {
		p.P90Offset = d.P90Offset
	}
	if p.P70Floor <= 0 {
		p.P70Floor = d.P70Floor
	}
	if p.P90Floor <= 0 {
		p.P90Floor = d.P90Floor
	}
	if p.CapacityHoursPerFTE <= 0 {
		p.CapacityHoursPerFTE = d.CapacityHoursPerFTE
	}
	return p
}

// DefaultFinancials returns the standard budget parameters.
func DefaultFinancials() Financials {
	return Financials{
		AnnualCost:  100000,
		CaptureRate: 0.5,
		HoursPerFTE: 1800,
	}
}

// WithDefaults replaces non-positive fields with DefaultFinancials values.
func (f Financials) WithDefaults() Financials {
	d := DefaultFinancials()
	if f.AnnualCost <= 0 {
		f.AnnualCost = d.AnnualCost
	}
	if f.CaptureRate <= 0 {
		f.CaptureRate = d.CaptureRate
	}
	if f.CaptureRate > 1 {
		f.CaptureRate = 1
	}
	if f.HoursPerFTE <= 0 {
		f.HoursPerFTE = d.HoursPerFTE
	}
	return f
}
