// Package output provides terminal output utilities for deskflow.
//
// This package includes:
//   - Table rendering for feasibility results, matched automations,
//     category breakdowns, catalog listings and stored submissions
//   - The ROI projection summary and the fit-score breakdown box
//   - Human-readable formatting for counts, hours, money and dates
//
// All renderers return strings and use ASCII box characters. ANSI colors
// are emitted only when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/catalog"
	"github.com/blackwell-systems/deskflow/internal/store"
)

// ANSI color codes for priority display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderFeasibilityTable renders one row per integrated tool.
func RenderFeasibilityTable(results []analyzer.FeasibilityResult) string {
	if len(results) == 0 {
		return "No tools integrated.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-26s %-16s %-6s %-9s %s\n",
		"Tool", "Tier", "Conf", "Enabled", "Capabilities"))
	sb.WriteString(strings.Repeat("─", 90))
	sb.WriteString("\n")

	for _, r := range results {
		caps := strings.Join(r.Capabilities, ", ")
		if caps == "" {
			caps = "—"
		}
		conf := fmt.Sprintf("%.2f", r.Confidence)
		if r.Confidence == analyzer.UnknownToolConfidence {
			conf = colorize(colorRed, conf)
		}
		sb.WriteString(fmt.Sprintf("%-26s %-16s %-6s %-9d %s\n",
			truncate(r.Tool, 26),
			truncate(r.Tier, 16),
			conf,
			len(r.EnabledUseCases),
			truncate(caps, 40)))
	}

	var notes []string
	for _, r := range results {
		notes = append(notes, r.Notes...)
		notes = append(notes, r.UpgradeHints...)
	}
	if len(notes) > 0 {
		sb.WriteString("\n")
		for _, n := range notes {
			sb.WriteString("  • " + n + "\n")
		}
	}

	return sb.String()
}

// RenderMatchTable renders matched automations. Expects matches already
// sorted by the analyzer.
func RenderMatchTable(matches []analyzer.MatchedUseCase) string {
	if len(matches) == 0 {
		return "No applicable automations.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-36s %-5s %-10s %-10s %-6s %-7s %s\n",
		"Automation", "Fit", "Tickets/mo", "Hours/mo", "Conf", "Effort", "Priority"))
	sb.WriteString(strings.Repeat("─", 92))
	sb.WriteString("\n")

	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("%-36s %-5s %-10s %-10s %-6s %-7s %s\n",
			truncate(m.Name, 36),
			fmt.Sprintf("%.0f", m.FitScore),
			formatCount(m.MonthlyDeflection),
			formatHours(m.MonthlyHoursSaved),
			fmt.Sprintf("%.0f%%", m.Confidence*100),
			string(m.Effort),
			colorize(getPriorityColor(m.Priority), formatPriority(m.Priority))))
	}

	return sb.String()
}

// RenderCategoryBreakdown renders the per-category rollup.
func RenderCategoryBreakdown(categories []analyzer.CategoryImpact) string {
	if len(categories) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %-10s %-10s %-6s %s\n",
		"Category", "Tickets/mo", "Hours/mo", "Conf", "Automations"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("%-24s %-10s %-10s %-6s %d\n",
			truncate(c.Category, 24),
			formatCount(c.Tickets),
			formatHours(c.Hours),
			fmt.Sprintf("%.0f%%", c.Confidence*100),
			c.UseCases))
	}

	return sb.String()
}

// RenderProjection renders the organization-level summary.
func RenderProjection(p analyzer.ROIProjection) string {
	var sb strings.Builder

	sb.WriteString(colorize(colorBold, "Projected impact") + "\n")
	sb.WriteString(fmt.Sprintf("  Automatable tickets:  %s of %s per month (%.1f%%)\n",
		formatCount(p.AutomatableTickets), formatCount(float64(p.TotalTickets)), p.AutomatablePct))
	if p.Clamped {
		sb.WriteString(colorize(colorGray, fmt.Sprintf("                        capped from %s matched tickets\n",
			formatCount(p.RawAutomatableTickets))))
	}
	sb.WriteString(fmt.Sprintf("  Hours saved:          %s per month\n", formatHours(p.HoursSaved)))
	sb.WriteString(fmt.Sprintf("  Expected / P70 / P90: %s / %s / %s hours\n",
		formatHours(p.ExpectedHours), formatHours(p.P70Hours), formatHours(p.P90Hours)))
	sb.WriteString(fmt.Sprintf("  Confidence:           %.0f%%\n", p.ConfidencePct))
	sb.WriteString(fmt.Sprintf("  Capacity FTE:         %.2f\n", p.CapacityFTE))
	sb.WriteString(fmt.Sprintf("  Budget FTE:           %.2f\n", p.BudgetFTE))
	sb.WriteString(fmt.Sprintf("  Annual value:         %s\n", formatMoney(p.AnnualValue)))

	return sb.String()
}

// RenderFitBreakdown renders the fit-score components of one match.
func RenderFitBreakdown(m analyzer.MatchedUseCase) string {
	var sb strings.Builder

	sb.WriteString("┌─────────────────────┬─────────┐\n")
	sb.WriteString("│ Component           │ Points  │\n")
	sb.WriteString("├─────────────────────┼─────────┤\n")
	sb.WriteString(fmt.Sprintf("│ Eligibility         │ %4.1f/40 │\n", m.Fit.Base))
	sb.WriteString(fmt.Sprintf("│ Volume              │ %4.1f/30 │\n", m.Fit.Volume))
	sb.WriteString(fmt.Sprintf("│ Resolution time     │ %4.1f/20 │\n", m.Fit.TTR))
	sb.WriteString(fmt.Sprintf("│ Effort (%-6s)     │ %4.1f/10 │\n", m.Effort, m.Fit.Effort))
	sb.WriteString("├─────────────────────┼─────────┤\n")
	sb.WriteString(fmt.Sprintf("│ Total               │ %5.1f   │\n", m.FitScore))
	sb.WriteString("└─────────────────────┴─────────┘\n")

	if len(m.Allocations) > 0 {
		sb.WriteString("\nAllocated volume:\n")
		for _, a := range m.Allocations {
			sb.WriteString(fmt.Sprintf("  %-24s %s of %d tickets, %s hours\n",
				truncate(a.Category, 24), formatCount(a.Tickets), a.OriginalVolume, formatHours(a.Hours)))
		}
	}

	return sb.String()
}

// RenderToolCatalog lists catalog tools with their tiers.
func RenderToolCatalog(tools []*catalog.Tool) string {
	if len(tools) == 0 {
		return "Catalog has no tools.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-26s %-18s %s\n", "Tool", "Tier", "Unlocks"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, t := range tools {
		for i, tier := range t.Tiers {
			name := ""
			if i == 0 {
				name = t.Name
			}
			sb.WriteString(fmt.Sprintf("%-26s %-18s %s\n",
				truncate(name, 26), truncate(tier.Name, 18), strings.Join(tier.Unlocks, ", ")))
		}
	}

	return sb.String()
}

// RenderUseCaseCatalog lists catalog use-cases.
func RenderUseCaseCatalog(useCases []*catalog.UseCase) string {
	if len(useCases) == 0 {
		return "Catalog has no use-cases.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-22s %-28s %-6s %-6s %-7s %s\n",
		"ID", "Tools", "Rate", "Conf", "Effort", "Targets"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, u := range useCases {
		targets := make([]string, len(u.TargetCategories))
		for i, c := range u.TargetCategories {
			targets[i] = string(c)
		}
		sb.WriteString(fmt.Sprintf("%-22s %-28s %-6s %-6s %-7s %s\n",
			truncate(u.ID, 22),
			truncate(strings.Join(u.RequiredTools, ", "), 28),
			fmt.Sprintf("%.0f%%", u.AutomationRate*100),
			fmt.Sprintf("%.0f%%", u.Confidence*100),
			string(u.Effort),
			strings.Join(targets, ", ")))
	}

	return sb.String()
}

// RenderSubmissionTable lists stored submissions.
func RenderSubmissionTable(subs []*store.Submission) string {
	if len(subs) == 0 {
		return "No saved reports.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-36s  %-24s %-16s %s\n", "ID", "Organization", "Created", "Report"))
	sb.WriteString(strings.Repeat("─", 90))
	sb.WriteString("\n")

	for _, s := range subs {
		status := "pending"
		if s.HasReport() {
			status = "✓"
		}
		sb.WriteString(fmt.Sprintf("%-36s  %-24s %-16s %s\n",
			s.ID,
			truncate(s.Organization, 24),
			formatRelativeTime(s.CreatedAt),
			status))
	}

	return sb.String()
}

// formatPriority returns the display label for a priority tier.
func formatPriority(p analyzer.Priority) string {
	switch p {
	case analyzer.PriorityImmediate:
		return "● immediate"
	case analyzer.PriorityQuickWin:
		return "◐ quick win"
	default:
		return "○ future"
	}
}

func getPriorityColor(p analyzer.Priority) string {
	switch p {
	case analyzer.PriorityImmediate:
		return colorGreen
	case analyzer.PriorityQuickWin:
		return colorYellow
	default:
		return colorGray
	}
}
