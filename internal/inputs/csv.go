package inputs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DecodeCSV reads a message batch from CSV. The header row names the
// columns case-insensitively; id, subject, from, to, date, summary,
// snippet, and body are recognized, extra columns are ignored. Rows
// without an id get a positional one so re-imports stay stable.
func DecodeCSV(reader io.Reader) ([]Message, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: payload contains no messages", ErrInvalidPayload)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	messages := make([]Message, 0, len(rows)-1)
	for n, row := range rows[1:] {
		m := Message{
			ID:      field(row, "id"),
			From:    field(row, "from"),
			Subject: field(row, "subject"),
			Date:    field(row, "date"),
			Snippet: field(row, "snippet"),
			Body:    field(row, "body"),
		}

		if m.Snippet == "" {
			m.Snippet = field(row, "summary")
		}
		if m.ID == "" {
			m.ID = fmt.Sprintf("email_%d", n)
		}
		if m.Body == "" && m.Snippet == "" {
			return nil, fmt.Errorf("%w: message %s has no content", ErrInvalidPayload, m.ID)
		}

		messages = append(messages, m)
	}

	return messages, nil
}

// IsCSV reports whether an uploaded file should be decoded as CSV
// rather than JSON.
func IsCSV(filename, contentType string) bool {
	if strings.EqualFold(strings.TrimSpace(contentType), "text/csv") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}
