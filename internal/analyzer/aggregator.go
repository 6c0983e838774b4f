package analyzer

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// Aggregate rolls matches into organization totals. Automatable tickets are
// capped at totalMonthlyTickets; when the cap binds, hours are scaled by
// the same ratio so the two stay consistent.
func (a *Analyzer) Aggregate(totalMonthlyTickets int, matches []MatchedUseCase, fin Financials) ROIProjection {
	fin = fin.WithDefaults()
	p := a.policy

	var rawTickets, rawHours float64
	for _, m := range matches {
		rawTickets += m.MonthlyDeflection
		rawHours += m.MonthlyHoursSaved
	}

	total := float64(max(totalMonthlyTickets, 0))
	tickets, hours := rawTickets, rawHours
	clamped := false
	if rawTickets > total {
		clamped = true
		tickets = total
		if rawTickets > 0 {
			hours = rawHours * (tickets / rawTickets)
		}
		a.logger.Debug("automatable tickets clamped to reported total",
			"raw_tickets", rawTickets, "total_tickets", total)
	}

	var pct float64
	if total > 0 {
		pct = tickets / total * 100
	}

	conf := weightedConfidence(matches, p.DefaultConfidence)
	expected := hours * conf
	p70 := hours * math.Max(conf-p.P70Offset, p.P70Floor)
	p90 := hours * math.Max(conf-p.P90Offset, p.P90Floor)
	// Floors above the confidence itself would invert the bands.
	p70 = math.Min(p70, expected)
	p90 = math.Min(p90, p70)

	capacityFTE := hours * monthsPerYear / p.CapacityHoursPerFTE
	budgetFTE := expected * monthsPerYear * fin.CaptureRate / fin.HoursPerFTE
	annualValue := decimal.NewFromFloat(budgetFTE).
		Mul(decimal.NewFromFloat(fin.AnnualCost)).
		Round(2)

	return ROIProjection{
		TotalTickets:          max(totalMonthlyTickets, 0),
		AutomatableTickets:    tickets,
		AutomatablePct:        pct,
		RawAutomatableTickets: rawTickets,
		RawHoursSaved:         rawHours,
		Clamped:               clamped,
		HoursSaved:            hours,
		ExpectedHours:         expected,
		P70Hours:              p70,
		P90Hours:              p90,
		CapacityFTE:           capacityFTE,
		BudgetFTE:             budgetFTE,
		AnnualValue:           annualValue,
		Confidence:            conf,
		ConfidencePct:         conf * 100,
		Categories:            a.breakdown(matches),
	}
}

// breakdown groups matches by use-case category, sorted by hours saved.
func (a *Analyzer) breakdown(matches []MatchedUseCase) []CategoryImpact {
	var order []string
	groups := make(map[string][]MatchedUseCase)
	for _, m := range matches {
		if _, ok := groups[m.Category]; !ok {
			order = append(order, m.Category)
		}
		groups[m.Category] = append(groups[m.Category], m)
	}

	out := make([]CategoryImpact, 0, len(order))
	for _, name := range order {
		group := groups[name]
		ci := CategoryImpact{
			Category:   name,
			UseCases:   len(group),
			Confidence: weightedConfidence(group, a.policy.DefaultConfidence),
		}
		for _, m := range group {
			ci.Tickets += m.MonthlyDeflection
			ci.Hours += m.MonthlyHoursSaved
		}
		out = append(out, ci)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hours > out[j].Hours
	})
	return out
}
