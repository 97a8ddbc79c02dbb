// Package profile implements the consumer profile domain: the
// classification records built up from email-derived observations,
// their addressing scheme, and read-side views with temporal decay
// applied.
package profile

import (
	"fmt"
	"strings"
	"time"
)

// Profile sections. Every classification record belongs to exactly one.
const (
	SectionDemographics   = "demographics"
	SectionHousehold      = "household"
	SectionInterests      = "interests"
	SectionPurchaseIntent = "purchase_intent"
)

// Sections lists the valid profile sections in presentation order.
var Sections = []string{
	SectionDemographics,
	SectionHousehold,
	SectionInterests,
	SectionPurchaseIntent,
}

// ValidSection reports whether s names a known profile section.
func ValidSection(s string) bool {
	for _, section := range Sections {
		if s == section {
			return true
		}
	}
	return false
}

// Record is a single classification held in a user's profile. Evidence
// lists behave as sets; EvidenceCount is always recomputed from them.
// FirstObserved never changes after creation, and LastValidated only
// moves forward when confirming evidence arrives.
type Record struct {
	Key                   string    `json:"key"`
	Namespace             string    `json:"namespace"`
	Section               string    `json:"section"`
	TaxonomyID            string    `json:"taxonomy_id"`
	Value                 string    `json:"value"`
	CategoryPath          string    `json:"category_path,omitempty"`
	Tiers                 []string  `json:"tiers,omitempty"`
	GroupingKey           string    `json:"grouping_key,omitempty"`
	GroupingValue         string    `json:"grouping_value,omitempty"`
	DataSource            string    `json:"data_source,omitempty"`
	PurchaseIntentFlag    *string   `json:"purchase_intent_flag,omitempty"`
	Confidence            float64   `json:"confidence"`
	SupportingEvidence    []string  `json:"supporting_evidence"`
	ContradictingEvidence []string  `json:"contradicting_evidence"`
	EvidenceCount         int       `json:"evidence_count"`
	SourceIDs             []string  `json:"source_ids"`
	Rationale             string    `json:"rationale"`
	NeedsReview           bool      `json:"needs_review"`
	FirstObserved         time.Time `json:"first_observed"`
	LastUpdated           time.Time `json:"last_updated"`
	LastValidated         time.Time `json:"last_validated"`

	// DaysSinceValidation is derived at read time from LastValidated;
	// it is never persisted.
	DaysSinceValidation int `json:"days_since_validation"`
}

// BuildKey derives the stable record key for a classification. The same
// (section, taxonomy ID, value) triple always yields the same key, so
// repeated observations of one classification land on one record.
func BuildKey(section, taxonomyID, value string) string {
	return fmt.Sprintf("semantic_%s_%s_%s", section, taxonomyID, slugify(value))
}

// EpisodicKey derives the record key for an input's episodic summary.
func EpisodicKey(inputID string) string {
	return "episodic_input_" + inputID
}

// slugify lowercases a value and collapses every run of characters
// outside [a-z0-9] into a single underscore.
func slugify(value string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}

// Summary aggregates a namespace's profile for dashboard views.
type Summary struct {
	Namespace    string                    `json:"namespace"`
	TotalRecords int                       `json:"total_records"`
	NeedsReview  int                       `json:"needs_review"`
	Sections     map[string]SectionSummary `json:"sections"`
}

// SectionSummary aggregates the records of one profile section.
type SectionSummary struct {
	Records       int     `json:"records"`
	AvgConfidence float64 `json:"avg_confidence"`
}
