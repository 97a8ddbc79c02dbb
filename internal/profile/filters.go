package profile

import (
	"net/url"
	"strconv"
)

// Filters contains optional filtering criteria for profile queries.
// Nil fields are ignored. MinConfidence and StaleDays apply to the
// decay-adjusted confidence, not the stored value.
type Filters struct {
	Section       *string  `json:"section,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	StaleDays     *int     `json:"stale_days,omitempty"`
}

// Matches reports whether a decay-adjusted record passes the filters.
// daysSinceValidation is supplied by the caller so the same clock
// drives both decay and staleness.
func (f Filters) Matches(r Record, daysSinceValidation int) bool {
	if f.Section != nil && r.Section != *f.Section {
		return false
	}
	if f.MinConfidence != nil && r.Confidence < *f.MinConfidence {
		return false
	}
	if f.StaleDays != nil && daysSinceValidation < *f.StaleDays {
		return false
	}
	return true
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("section"); s != "" {
		f.Section = &s
	}

	if m := values.Get("min_confidence"); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			f.MinConfidence = &v
		}
	}

	if d := values.Get("stale_days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil {
			f.StaleDays = &v
		}
	}

	return f
}
