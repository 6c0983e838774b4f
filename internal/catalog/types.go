package catalog

import (
	"fmt"
	"strings"
)

// Effort is the implementation effort tier of a use-case.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Valid reports whether e is one of the known effort tiers.
func (e Effort) Valid() bool {
	switch e {
	case EffortLow, EffortMedium, EffortHigh:
		return true
	}
	return false
}

// ParseEffort parses an effort tier, case-insensitively.
func ParseEffort(s string) (Effort, error) {
	e := Effort(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: unknown effort %q (must be low, medium, or high)", ErrInvalid, s)
	}
	return e, nil
}

// CapabilityGroup is a named bundle of API operations a tool exposes.
type CapabilityGroup struct {
	Key          string
	DisplayName  string
	Capabilities []string
	Scopes       []string
	UnlockedBy   []string // tier names, in catalog order
}

// Tier is a license tier and the explicit list of capability-group keys it
// unlocks. Tiers do not inherit from one another.
type Tier struct {
	Name    string
	Unlocks []string
}

// Tool is the catalog entry for one integrable tool.
type Tool struct {
	Name   string
	Key    ToolKey
	Tiers  []Tier
	Groups []CapabilityGroup
}

// Tier returns the tier with the given name, compared case-insensitively.
func (t *Tool) Tier(name string) (Tier, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, tier := range t.Tiers {
		if strings.ToLower(tier.Name) == want {
			return tier, true
		}
	}
	return Tier{}, false
}

// Group returns the capability group with the given key.
func (t *Tool) Group(key string) (CapabilityGroup, bool) {
	for _, g := range t.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return CapabilityGroup{}, false
}

// UseCase is a catalog automation definition. Use-cases are never mutated
// after loading.
type UseCase struct {
	ID               string
	Name             string
	Category         string
	RequiredTools    []string
	RequiredAPIs     map[ToolKey][]string
	TargetCategories []Category
	AutomationRate   float64
	// ResidualHours, when set, is the handling time left per ticket after
	// automation. Savings are then the delta against the original time.
	ResidualHours *float64
	// ApprovalLeakage is the fraction of automated tickets that still need
	// a human touch and save nothing.
	ApprovalLeakage *float64
	Confidence      float64
	Effort          Effort
	TimeToValueDays int
	Prerequisites   []string
	Workflow        []string
}

// Requires reports whether the use-case lists the tool as required.
func (u *UseCase) Requires(key ToolKey) bool {
	for _, name := range u.RequiredTools {
		if NormalizeTool(name) == key {
			return true
		}
	}
	return false
}

// Catalog is the immutable reference data shared by every analysis run.
type Catalog struct {
	Tools    []*Tool
	UseCases []*UseCase

	toolIndex    map[ToolKey]*Tool
	useCaseIndex map[string]*UseCase
}

func newCatalog(tools []*Tool, useCases []*UseCase) *Catalog {
	c := &Catalog{
		Tools:        tools,
		UseCases:     useCases,
		toolIndex:    make(map[ToolKey]*Tool, len(tools)),
		useCaseIndex: make(map[string]*UseCase, len(useCases)),
	}
	for _, t := range tools {
		c.toolIndex[t.Key] = t
	}
	for _, u := range useCases {
		c.useCaseIndex[u.ID] = u
	}
	return c
}

// Tool looks up a tool by any spelling of its name.
func (c *Catalog) Tool(name string) (*Tool, bool) {
	t, ok := c.toolIndex[NormalizeTool(name)]
	return t, ok
}

// UseCase looks up a use-case by ID.
func (c *Catalog) UseCase(id string) (*UseCase, bool) {
	u, ok := c.useCaseIndex[id]
	return u, ok
}

// UseCasesFor returns the use-cases that list the tool as required, in
// catalog order.
func (c *Catalog) UseCasesFor(key ToolKey) []*UseCase {
	var out []*UseCase
	for _, u := range c.UseCases {
		if u.Requires(key) {
			out = append(out, u)
		}
	}
	return out
}
