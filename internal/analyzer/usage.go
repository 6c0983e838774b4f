package analyzer

import "github.com/blackwell-systems/deskflow/internal/catalog"

// capacityPool tracks how many tickets per category are still unclaimed.
// One pool belongs to exactly one Match call; it only ever decreases.
type capacityPool struct {
	remaining map[catalog.Category]float64
}

// newCapacityPool seeds the pool from reported volumes. Activities that
// share a category share one entry.
func newCapacityPool(activities []Activity) *capacityPool {
	p := &capacityPool{remaining: make(map[catalog.Category]float64, len(activities))}
	for _, act := range activities {
		if act.MonthlyVolume <= 0 {
			continue
		}
		p.remaining[catalog.NormalizeCategory(act.Category)] += float64(act.MonthlyVolume)
	}
	return p
}

// Remaining returns the unclaimed tickets for a category.
func (p *capacityPool) Remaining(c catalog.Category) float64 {
	return p.remaining[c]
}

// Claim takes up to want tickets from the category and returns how many
// were actually granted.
func (p *capacityPool) Claim(c catalog.Category, want float64) float64 {
	left := p.remaining[c]
	if left <= 0 || want <= 0 {
		return 0
	}
	if want > left {
		want = left
	}
	p.remaining[c] = left - want
	return want
}
