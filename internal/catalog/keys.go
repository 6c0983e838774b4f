package catalog

import "strings"

// ToolKey is the normalized form of a tool name. "Microsoft  Entra-ID",
// "microsoft entra id" and "MICROSOFT_ENTRA_ID" all share one key.
type ToolKey string

// NormalizeTool returns the lookup key for a tool name: trimmed, lower-cased,
// with runs of whitespace, '-' and '_' collapsed to a single space.
func NormalizeTool(name string) ToolKey {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_'
	})
	return ToolKey(strings.Join(fields, " "))
}

// Category is a normalized ticket category.
type Category string

// NormalizeCategory trims and lower-cases a ticket category.
func NormalizeCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// Matches reports whether either category contains the other. Matching is
// case-insensitive because both sides are normalized; an empty category
// matches nothing.
func (c Category) Matches(other Category) bool {
	if c == "" || other == "" {
		return false
	}
	return strings.Contains(string(c), string(other)) || strings.Contains(string(other), string(c))
}

// MatchesAny reports whether c matches at least one of targets.
func (c Category) MatchesAny(targets []Category) bool {
	for _, t := range targets {
		if c.Matches(t) {
			return true
		}
	}
	return false
}
