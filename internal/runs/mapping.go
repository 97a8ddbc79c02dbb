package runs

import (
	"net/url"
	"strings"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/query"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "runs", "r").
	Project("id", "ID").
	Project("namespace", "Namespace").
	Project("status", "Status").
	Project("processed_count", "ProcessedCount").
	Project("created_count", "CreatedCount").
	Project("updated_count", "UpdatedCount").
	Project("warning_count", "WarningCount").
	Project("warnings", "Warnings").
	Project("error", "Error").
	Project("started_at", "StartedAt").
	Project("completed_at", "CompletedAt")

var defaultSort = query.SortField{
	Field:      "StartedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for run queries.
// Nil fields are ignored; both use exact matching.
type Filters struct {
	Namespace *string `json:"namespace,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Namespace", f.Namespace).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("namespace"); n != "" {
		f.Namespace = &n
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanRun(s repository.Scanner) (Run, error) {
	var (
		r        Run
		warnings string
	)

	err := s.Scan(
		&r.ID,
		&r.Namespace,
		&r.Status,
		&r.ProcessedCount,
		&r.CreatedCount,
		&r.UpdatedCount,
		&r.WarningCount,
		&warnings,
		&r.Error,
		&r.StartedAt,
		&r.CompletedAt,
	)

	if warnings != "" {
		r.Warnings = strings.Split(warnings, "\n")
	}

	return r, err
}

func joinWarnings(warnings []string) string {
	return strings.Join(warnings, "\n")
}
