package taxonomy

import (
	"net/url"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/query"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "taxonomy_entries", "t").
	Project("id", "ID").
	Project("section", "Section").
	Project("parent_id", "ParentID").
	Project("tier_1", "Tier1").
	Project("tier_2", "Tier2").
	Project("tier_3", "Tier3").
	Project("tier_4", "Tier4").
	Project("tier_5", "Tier5").
	Project("grouping_tier_key", "GroupingTierKey").
	Project("grouping_value", "GroupingValue")

var defaultSort = query.SortField{Field: "ID"}

// Filters contains optional filtering criteria for taxonomy queries.
// Nil fields are ignored.
type Filters struct {
	Section *string `json:"section,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Section", f.Section)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("section"); s != "" {
		f.Section = &s
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry

	err := s.Scan(
		&e.ID,
		&e.Section,
		&e.ParentID,
		&e.Tier1,
		&e.Tier2,
		&e.Tier3,
		&e.Tier4,
		&e.Tier5,
		&e.GroupingTierKey,
		&e.GroupingValue,
	)

	return e, err
}
