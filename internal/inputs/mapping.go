package inputs

import (
	"net/url"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/query"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "inputs", "i").
	Project("id", "ID").
	Project("namespace", "Namespace").
	Project("source", "Source").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("message_count", "MessageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("received_at", "ReceivedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "ReceivedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for input queries.
// Nil fields are ignored. Namespace, Source, and Status use exact
// matching; Filename uses case-insensitive contains matching.
type Filters struct {
	Namespace *string `json:"namespace,omitempty"`
	Source    *string `json:"source,omitempty"`
	Status    *string `json:"status,omitempty"`
	Filename  *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Namespace", f.Namespace).
		WhereEquals("Source", f.Source).
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("namespace"); n != "" {
		f.Namespace = &n
	}

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanInput(s repository.Scanner) (Input, error) {
	var i Input

	err := s.Scan(
		&i.ID,
		&i.Namespace,
		&i.Source,
		&i.Filename,
		&i.ContentType,
		&i.SizeBytes,
		&i.MessageCount,
		&i.StorageKey,
		&i.Status,
		&i.ReceivedAt,
		&i.UpdatedAt,
	)

	return i, err
}
