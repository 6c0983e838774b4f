package analyzer

import (
	"fmt"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// ResolveAll resolves each tool independently, preserving input order.
func (a *Analyzer) ResolveAll(tools []ToolIntegration) []FeasibilityResult {
	results := make([]FeasibilityResult, 0, len(tools))
	for _, t := range tools {
		results = append(results, a.Resolve(t))
	}
	return results
}

// Resolve determines which capability groups the tool's tier unlocks and
// which use-cases become eligible through it. A tool missing from the
// catalog yields a zero-confidence result rather than an error.
func (a *Analyzer) Resolve(ti ToolIntegration) FeasibilityResult {
	res := FeasibilityResult{
		Tool:            ti.Name,
		Tier:            ti.Tier,
		Capabilities:    []string{},
		RawCapabilities: []string{},
		EnabledUseCases: []string{},
		MissingAPIs:     []string{},
		UpgradeHints:    []string{},
	}

	tool, ok := a.catalog.Tool(ti.Name)
	if !ok {
		a.logger.Debug("tool not in catalog", "tool", ti.Name)
		res.Notes = append(res.Notes, fmt.Sprintf("configuration not found for tool %s", ti.Name))
		res.Confidence = UnknownToolConfidence
		return res
	}

	tier, ok := tool.Tier(ti.Tier)
	if !ok {
		a.logger.Debug("license tier not in catalog", "tool", tool.Name, "tier", ti.Tier)
		res.Notes = append(res.Notes, fmt.Sprintf("license tier %q not recognized for %s", ti.Tier, tool.Name))
	}

	unlocked := make(map[string]bool, len(tier.Unlocks))
	seenRaw := make(map[string]bool)
	for _, key := range tier.Unlocks {
		unlocked[key] = true
		g, _ := tool.Group(key)
		name := g.DisplayName
		if name == "" {
			name = key
		}
		res.Capabilities = append(res.Capabilities, name)
		for _, c := range g.Capabilities {
			if !seenRaw[c] {
				seenRaw[c] = true
				res.RawCapabilities = append(res.RawCapabilities, c)
			}
		}
	}

	seenMissing := make(map[string]bool)
	for _, u := range a.catalog.UseCasesFor(tool.Key) {
		required := u.RequiredAPIs[tool.Key]
		if coversAll(unlocked, required) {
			res.EnabledUseCases = append(res.EnabledUseCases, u.ID)
			continue
		}
		for _, key := range required {
			if !unlocked[key] && !seenMissing[key] {
				seenMissing[key] = true
				res.MissingAPIs = append(res.MissingAPIs, key)
			}
		}
	}

	res.UpgradeHints = upgradeHints(tool, tier.Name, res.MissingAPIs)

	if len(res.EnabledUseCases) > 0 {
		res.Confidence = ContributingToolConfidence
	} else {
		res.Confidence = IdleToolConfidence
	}
	return res
}

// coversAll reports whether every required key is unlocked. Partial
// coverage does not count.
func coversAll(unlocked map[string]bool, required []string) bool {
	for _, key := range required {
		if !unlocked[key] {
			return false
		}
	}
	return true
}

// upgradeHints names, for each missing capability group, the first other
// tier that unlocks it.
func upgradeHints(tool *catalog.Tool, current string, missing []string) []string {
	hints := []string{}
	seen := make(map[string]bool)
	for _, key := range missing {
		g, ok := tool.Group(key)
		if !ok {
			continue
		}
		for _, tierName := range g.UnlockedBy {
			if tierName == current {
				continue
			}
			name := g.DisplayName
			if name == "" {
				name = key
			}
			hint := fmt.Sprintf("Upgrade %s to %s to unlock %s", tool.Name, tierName, name)
			if !seen[hint] {
				seen[hint] = true
				hints = append(hints, hint)
			}
			break
		}
	}
	return hints
}
