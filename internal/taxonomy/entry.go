// Package taxonomy implements the audience taxonomy domain: the
// catalog of valid classification targets, candidate validation
// against it, and the formatted context handed to analysis prompts.
package taxonomy

import "strings"

// Entry is a single audience taxonomy entry. Tiers form a path from
// the broadest category to the leaf value; unused tiers are empty.
type Entry struct {
	ID              string  `json:"id"`
	Section         string  `json:"section"`
	ParentID        *string `json:"parent_id"`
	Tier1           string  `json:"tier_1"`
	Tier2           string  `json:"tier_2"`
	Tier3           string  `json:"tier_3"`
	Tier4           string  `json:"tier_4"`
	Tier5           string  `json:"tier_5"`
	GroupingTierKey string  `json:"grouping_tier_key"`
	GroupingValue   string  `json:"grouping_value"`
}

// Value returns the classification value an entry defines: the deepest
// populated tier from tier 5 down to tier 3, falling back to tier 2.
func (e Entry) Value() string {
	for _, tier := range []string{e.Tier5, e.Tier4, e.Tier3} {
		if v := strings.TrimSpace(tier); v != "" {
			return v
		}
	}
	return strings.TrimSpace(e.Tier2)
}

// Placeholder reports whether the entry's value is an asterisk
// placeholder (for example "*Language"). Placeholder entries accept
// any non-empty candidate value in place of the placeholder text.
func (e Entry) Placeholder() bool {
	return strings.HasPrefix(e.Value(), "*")
}

// Path returns the populated tiers joined with " | " for prompt
// context and display.
func (e Entry) Path() string {
	return strings.Join(e.Tiers(), " | ")
}

// Tiers returns the populated tiers in order, broadest first.
func (e Entry) Tiers() []string {
	parts := make([]string, 0, 5)
	for _, tier := range []string{e.Tier1, e.Tier2, e.Tier3, e.Tier4, e.Tier5} {
		if v := strings.TrimSpace(tier); v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

// extension entries are structural placeholders in the source
// taxonomy, never valid classification targets.
func (e Entry) extension() bool {
	for _, tier := range []string{e.Tier1, e.Tier2, e.Tier3, e.Tier4, e.Tier5} {
		if strings.Contains(tier, "*Extension") {
			return true
		}
	}
	return false
}
