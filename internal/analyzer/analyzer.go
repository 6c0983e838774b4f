// Package analyzer turns a tool inventory and reported ticket volumes into
// a ranked, non-double-counted automation plan.
//
// The pipeline has three stages run in sequence:
//   - Resolve: which capability groups a tool's license tier unlocks, and
//     which catalog use-cases that makes eligible
//   - Match: greedy allocation of ticket volume to eligible use-cases, so
//     no category is automated more than once
//   - Aggregate: organization totals, confidence bands and FTE/budget
//     conversions
//
// Every stage is a pure function of its inputs and the read-only catalog.
// An Analyzer may be shared by concurrent runs.
package analyzer

import (
	"io"
	"log/slog"

	"github.com/blackwell-systems/deskflow/internal/catalog"
)

// Analyzer runs the analysis pipeline against one catalog.
type Analyzer struct {
	catalog *catalog.Catalog
	policy  Policy
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPolicy overrides the aggregation policy constants.
func WithPolicy(p Policy) Option {
	return func(a *Analyzer) { a.policy = p.withDefaults() }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates a new Analyzer for the given catalog.
func New(c *catalog.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog: c,
		policy:  DefaultPolicy(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Catalog returns the catalog the analyzer reads from.
func (a *Analyzer) Catalog() *catalog.Catalog {
	return a.catalog
}

// Policy returns the policy in effect.
func (a *Analyzer) Policy() Policy {
	return a.policy
}

// Analyze runs all three stages. It never fails: unknown tools, empty
// inputs and zero volumes all produce a well-formed, possibly empty report.
func (a *Analyzer) Analyze(in Input) *Report {
	feasibility := a.ResolveAll(in.Tools)
	matches := a.Match(in.Activities, feasibility)
	projection := a.Aggregate(in.TotalMonthlyTickets, matches, in.Financials)

	a.logger.Debug("analysis complete",
		"tools", len(in.Tools),
		"activities", len(in.Activities),
		"matches", len(matches),
		"automatable_pct", projection.AutomatablePct)

	return &Report{
		Feasibility: feasibility,
		Matches:     matches,
		Projection:  projection,
	}
}
