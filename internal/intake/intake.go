// Package intake reads and validates organization intake files.
//
// Intake is the boundary where business-level validation happens; the
// analyzer itself accepts any input.
package intake

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// ErrInvalid is wrapped by every intake validation error.
var ErrInvalid = errors.New("invalid intake")

// Intake is one organization's reported inputs.
type Intake struct {
	Organization        string                     `json:"organization" yaml:"organization"`
	TotalMonthlyTickets int                        `json:"total_monthly_tickets" yaml:"total_monthly_tickets"`
	Tools               []analyzer.ToolIntegration `json:"tools" yaml:"tools"`
	Activities          []Activity                 `json:"activities" yaml:"activities"`
	Financials          *analyzer.Financials       `json:"financials,omitempty" yaml:"financials"`
}

// Activity is a reported ticket category. Exactly one of MonthlyVolume and
// SharePct is given; a share is converted against the total ticket count.
type Activity struct {
	Category           string   `json:"category" yaml:"category"`
	MonthlyVolume      *int     `json:"monthly_volume,omitempty" yaml:"monthly_volume"`
	SharePct           *float64 `json:"share_pct,omitempty" yaml:"share_pct"`
	AvgResolutionHours float64  `json:"avg_resolution_hours" yaml:"avg_resolution_hours"`
}

// Load reads and validates an intake file.
func Load(path string) (*Intake, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates intake YAML.
func Parse(data []byte) (*Intake, error) {
	var in Intake
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse intake: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Validate checks required fields and value ranges.
func (in *Intake) Validate() error {
	if in.TotalMonthlyTickets < 0 {
		return fmt.Errorf("%w: total_monthly_tickets must not be negative", ErrInvalid)
	}

	for i, t := range in.Tools {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: tool %d has no name", ErrInvalid, i+1)
		}
	}

	seen := make(map[catalog.Category]bool, len(in.Activities))
	var shareSum float64
	for _, act := range in.Activities {
		cat := catalog.NormalizeCategory(act.Category)
		if cat == "" {
			return fmt.Errorf("%w: activity with empty category", ErrInvalid)
		}
		if seen[cat] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalid, act.Category)
		}
		seen[cat] = true

		switch {
		case act.MonthlyVolume != nil && act.SharePct != nil:
			return fmt.Errorf("%w: category %q sets both monthly_volume and share_pct", ErrInvalid, act.Category)
		case act.MonthlyVolume == nil && act.SharePct == nil:
			return fmt.Errorf("%w: category %q needs monthly_volume or share_pct", ErrInvalid, act.Category)
		case act.MonthlyVolume != nil && *act.MonthlyVolume < 0:
			return fmt.Errorf("%w: category %q has negative monthly_volume", ErrInvalid, act.Category)
		case act.SharePct != nil && (*act.SharePct < 0 || *act.SharePct > 100):
			return fmt.Errorf("%w: category %q share_pct must be between 0 and 100", ErrInvalid, act.Category)
		}
		if act.SharePct != nil {
			shareSum += *act.SharePct
			if in.TotalMonthlyTickets == 0 {
				return fmt.Errorf("%w: category %q uses share_pct without total_monthly_tickets", ErrInvalid, act.Category)
			}
		}
		if act.AvgResolutionHours < 0 {
			return fmt.Errorf("%w: category %q has negative avg_resolution_hours", ErrInvalid, act.Category)
		}
	}

	if shareSum > 100+1e-9 {
		return fmt.Errorf("%w: share_pct values sum to %.1f, more than 100", ErrInvalid, shareSum)
	}
	return nil
}

// Input converts the intake into analyzer input. Financials from the
// intake file take precedence over defaults.
func (in *Intake) Input(defaults analyzer.Financials) analyzer.Input {
	out := analyzer.Input{
		TotalMonthlyTickets: in.TotalMonthlyTickets,
		Tools:               append([]analyzer.ToolIntegration(nil), in.Tools...),
		Financials:          defaults,
	}
	if in.Financials != nil {
		out.Financials = mergeFinancials(defaults, *in.Financials)
	}

	var sum int
	for _, act := range in.Activities {
		volume := 0
		if act.MonthlyVolume != nil {
			volume = *act.MonthlyVolume
		} else if act.SharePct != nil {
			volume = int(math.Round(float64(in.TotalMonthlyTickets) * *act.SharePct / 100))
		}
		sum += volume
		out.Activities = append(out.Activities, analyzer.Activity{
			Category:           act.Category,
			MonthlyVolume:      volume,
			AvgResolutionHours: act.AvgResolutionHours,
		})
	}

	if out.TotalMonthlyTickets == 0 {
		out.TotalMonthlyTickets = sum
	}
	return out
}

func mergeFinancials(base, override analyzer.Financials) analyzer.Financials {
	if override.AnnualCost > 0 {
		base.AnnualCost = override.AnnualCost
	}
	if override.CaptureRate > 0 {
		base.CaptureRate = override.CaptureRate
	}
	if override.HoursPerFTE > 0 {
		base.HoursPerFTE = override.HoursPerFTE
	}
	return base
}
