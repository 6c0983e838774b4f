package analyzer

import (
	"math"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// Match allocates reported ticket volume to eligible use-cases. Use-cases
// are visited in precedence order and draw from a shared capacity pool, so
// the tickets claimed for a category never exceed its reported volume.
// The result is sorted by fit score, highest first.
func (a *Analyzer) Match(activities []Activity, feasibility []FeasibilityResult) []MatchedUseCase {
	eligible := make(map[string]bool)
	for _, f := range feasibility {
		for _, id := range f.EnabledUseCases {
			eligible[id] = true
		}
	}

	pool := newCapacityPool(activities)
	matches := []MatchedUseCase{}

	for _, u := range byPrecedence(a.catalog.UseCases) {
		if !eligible[u.ID] {
			continue
		}

		matching := matchingActivities(u, activities)
		if len(matching) == 0 {
			a.logger.Debug("no reported category matches use-case", "use_case", u.ID)
			continue
		}

		fit := computeFit(u, matching)
		allocations, tickets, hours := allocate(u, matching, pool)
		if tickets <= 0 {
			a.logger.Debug("capacity exhausted for use-case", "use_case", u.ID)
			continue
		}

		matches = append(matches, MatchedUseCase{
			ID:                u.ID,
			Name:              u.Name,
			Category:          u.Category,
			FitScore:          fit.Total(),
			Fit:               fit,
			MonthlyDeflection: tickets,
			MonthlyHoursSaved: hours,
			Confidence:        clamp01(u.Confidence),
			Effort:            u.Effort,
			TimeToValueDays:   u.TimeToValueDays,
			Prerequisites:     cloneStrings(u.Prerequisites),
			Workflow:          cloneStrings(u.Workflow),
			Priority:          classifyPriority(u.Effort, u.TimeToValueDays),
			RequiredTools:     cloneStrings(u.RequiredTools),
			Allocations:       allocations,
		})
	}

	sortByFit(matches)
	return matches
}

// matchingActivities returns the activities whose category matches any of
// the use-case's targets, in input order.
func matchingActivities(u *catalog.UseCase, activities []Activity) []Activity {
	var out []Activity
	for _, act := range activities {
		if catalog.NormalizeCategory(act.Category).MatchesAny(u.TargetCategories) {
			out = append(out, act)
		}
	}
	return out
}

// allocate claims capacity for one use-case and returns what it got.
func allocate(u *catalog.UseCase, matching []Activity, pool *capacityPool) ([]Allocation, float64, float64) {
	allocations := []Allocation{}
	var tickets, hours float64

	for _, act := range matching {
		cat := catalog.NormalizeCategory(act.Category)
		if pool.Remaining(cat) <= 0 {
			continue
		}

		possible := float64(act.MonthlyVolume) * u.AutomationRate
		deflected := pool.Claim(cat, possible)
		if deflected <= 0 {
			continue
		}

		saved := deflected * hoursSavedPerTicket(u, act.AvgResolutionHours)
		tickets += deflected
		hours += saved
		allocations = append(allocations, Allocation{
			Category:       act.Category,
			OriginalVolume: act.MonthlyVolume,
			Tickets:        deflected,
			Hours:          saved,
		})
	}

	return allocations, tickets, hours
}

// hoursSavedPerTicket is the full resolution time for a fully automated
// use-case, or the delta against the residual handling time for an assisted
// one. Approval leakage then removes the share of tickets that still need
// a human and save nothing.
func hoursSavedPerTicket(u *catalog.UseCase, avgResolutionHours float64) float64 {
	perTicket := avgResolutionHours
	if u.ResidualHours != nil {
		perTicket = math.Max(0, avgResolutionHours-*u.ResidualHours)
	}
	if u.ApprovalLeakage != nil {
		perTicket *= 1 - *u.ApprovalLeakage
	}
	return perTicket
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
