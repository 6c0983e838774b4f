package analyzer

import (
	"sort"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// precedence is the order in which use-cases claim contested capacity:
// expected automated share, highest first.
func precedence(u *catalog.UseCase) float64 {
	return u.AutomationRate * u.Confidence
}

// byPrecedence returns the use-cases ordered by descending precedence.
// Ties keep catalog order.
func byPrecedence(useCases []*catalog.UseCase) []*catalog.UseCase {
	ordered := make([]*catalog.UseCase, len(useCases))
	copy(ordered, useCases)
	sort.SliceStable(ordered, func(i, j int) bool {
		return precedence(ordered[i]) > precedence(ordered[j])
	})
	return ordered
}

// classifyPriority places a use-case in a rollout tier:
//   - immediate: low effort and value within 7 days
//   - quick_win: value within 21 days
//   - future: everything else
func classifyPriority(effort catalog.Effort, timeToValueDays int) Priority {
	if effort == catalog.EffortLow && timeToValueDays <= ImmediateMaxDays {
		return PriorityImmediate
	}
	if timeToValueDays <= QuickWinMaxDays {
		return PriorityQuickWin
	}
	return PriorityFuture
}

// sortByFit orders matches by descending fit score, keeping the incoming
// order for ties.
func sortByFit(matches []MatchedUseCase) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FitScore > matches[j].FitScore
	})
}
