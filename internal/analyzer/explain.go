package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUseCase is returned by Explain for IDs absent from the catalog.
var ErrUnknownUseCase = errors.New("unknown use-case")

// Explanation describes why a single use-case did or did not make the plan.
type Explanation struct {
	UseCaseID string
	Name      string
	Eligible  bool
	// Match is set when the use-case received an allocation.
	Match *MatchedUseCase
	// Reason is a human-readable summary.
	Reason string
	// MissingAPIs lists required capability groups no integrated tool unlocks.
	MissingAPIs []string
}

// Explain runs the pipeline and reports on one use-case.
func (a *Analyzer) Explain(in Input, useCaseID string) (*Explanation, error) {
	u, ok := a.catalog.UseCase(useCaseID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUseCase, useCaseID)
	}

	exp := &Explanation{UseCaseID: u.ID, Name: u.Name}
	feasibility := a.ResolveAll(in.Tools)

	var missing []string
	for _, f := range feasibility {
		for _, id := range f.EnabledUseCases {
			if id == u.ID {
				exp.Eligible = true
			}
		}
	}
	if !exp.Eligible {
		integrated := make(map[string]bool)
		for _, t := range in.Tools {
			if tool, ok := a.catalog.Tool(t.Name); ok {
				integrated[string(tool.Key)] = true
			}
		}
		for _, name := range u.RequiredTools {
			tool, ok := a.catalog.Tool(name)
			if !ok || !integrated[string(tool.Key)] {
				missing = append(missing, name+" (not integrated)")
				continue
			}
			for _, f := range feasibility {
				if t, ok := a.catalog.Tool(f.Tool); !ok || t.Key != tool.Key {
					continue
				}
				for _, key := range u.RequiredAPIs[tool.Key] {
					for _, m := range f.MissingAPIs {
						if m == key {
							missing = append(missing, tool.Name+": "+key)
						}
					}
				}
			}
		}
		exp.MissingAPIs = missing
		exp.Reason = "not eligible"
		if len(missing) > 0 {
			exp.Reason = "not eligible, missing " + strings.Join(missing, ", ")
		}
		return exp, nil
	}

	if len(matchingActivities(u, in.Activities)) == 0 {
		exp.Reason = "no reported ticket category matches its targets"
		return exp, nil
	}

	for _, m := range a.Match(in.Activities, feasibility) {
		if m.ID == u.ID {
			m := m
			exp.Match = &m
			exp.Reason = fmt.Sprintf("matched, %s priority", m.Priority)
			return exp, nil
		}
	}

	exp.Reason = "no unclaimed ticket volume left in its categories"
	return exp, nil
}
