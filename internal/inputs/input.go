// Package inputs implements the input batch domain: registration of
// email-derived message batches, payload archival in blob storage, and
// the pending-batch feed consumed by profiling runs.
package inputs

import (
	"time"

	"github.com/google/uuid"
)

// Input statuses. A batch is pending until a profiling run consumes
// it; failed batches stay eligible for reprocessing.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusFailed    = "failed"
)

// Input represents a registered batch of email-derived messages with
// its metadata and blob storage reference. The raw payload lives in
// blob storage; only metadata is kept in the database.
type Input struct {
	ID           uuid.UUID `json:"id"`
	Namespace    string    `json:"namespace"`
	Source       string    `json:"source"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	MessageCount int       `json:"message_count"`
	StorageKey   string    `json:"storage_key"`
	Status       string    `json:"status"`
	ReceivedAt   time.Time `json:"received_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is a single email-derived observation within a batch
// payload. Body carries the text the analysis stages read.
type Message struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Snippet string `json:"snippet,omitempty"`
	Body    string `json:"body"`
}

// CreateCommand carries the data needed to upload and register a new
// input batch. Data holds the raw payload: a JSON array of messages,
// or a CSV export when Filename or ContentType indicates one. CSV
// payloads are converted to the JSON form before archival.
type CreateCommand struct {
	Data        []byte
	Namespace   string
	Source      string
	Filename    string
	ContentType string
}

// BatchResult reports the outcome of a single file within a batch upload.
type BatchResult struct {
	Input    *Input `json:"input,omitempty"`
	Filename string `json:"filename"`
	Error    string `json:"error,omitempty"`
}
