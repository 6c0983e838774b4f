package analyzer

import (
	"math"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// computeFit scores how well a use-case suits the organization, from the
// original reported volumes of its matching activities. Allocation order
// never affects the fit score.
// Score components:
//   - Base (40 points): awarded to every eligible, matching use-case
//   - Volume (30 points): linear up to 50 tickets/month
//   - TTR (20 points): linear up to a 2 hour average resolution time
//   - Effort (10 points): low=10, medium=6, high=3
func computeFit(u *catalog.UseCase, matching []Activity) FitBreakdown {
	return FitBreakdown{
		Base:   FitBase,
		Volume: computeVolumeScore(matching),
		TTR:    computeTTRScore(matching),
		Effort: computeEffortScore(u.Effort),
	}
}

func computeVolumeScore(matching []Activity) float64 {
	var total float64
	for _, act := range matching {
		total += float64(act.MonthlyVolume)
	}
	return math.Min(FitVolumeMax, total/FitVolumePivot*FitVolumeMax)
}

func computeTTRScore(matching []Activity) float64 {
	if len(matching) == 0 {
		return 0
	}
	var sum float64
	for _, act := range matching {
		sum += act.AvgResolutionHours
	}
	avg := sum / float64(len(matching))
	return math.Min(FitTTRMax, avg/FitTTRPivotHours*FitTTRMax)
}

func computeEffortScore(e catalog.Effort) float64 {
	switch e {
	case catalog.EffortLow:
		return FitEffortLow
	case catalog.EffortMedium:
		return FitEffortMedium
	default:
		return FitEffortHigh
	}
}

// weightedConfidence returns Σ(confidence·hours)/Σ(hours) over matches,
// clamped to [0,1]. The weights are the raw allocated hours, never the
// clamped totals. With nothing to weight by it returns fallback.
func weightedConfidence(matches []MatchedUseCase, fallback float64) float64 {
	var weighted, hours float64
	for _, m := range matches {
		weighted += m.Confidence * m.MonthlyHoursSaved
		hours += m.MonthlyHoursSaved
	}
	if len(matches) == 0 || hours <= 0 {
		return fallback
	}
	return clamp01(weighted / hours)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
