// Package reconcile merges candidate classifications into stored
// profile records. Each candidate either creates a record or updates
// an existing one through the confidence evolution rules; evidence
// lists are treated as sets and every mutation happens inside a single
// atomic store update.
package reconcile

import (
	"context"
	"fmt"
	"time"
)

// Candidate is a classification proposed by the analysis stages,
// already adjusted for evidence quality. Confidence must be in [0, 1].
type Candidate struct {
	Section            string   `json:"section"`
	TaxonomyID         string   `json:"taxonomy_id"`
	Value              string   `json:"value"`
	CategoryPath       string   `json:"category_path,omitempty"`
	Tiers              []string `json:"tiers,omitempty"`
	GroupingKey        string   `json:"grouping_key,omitempty"`
	GroupingValue      string   `json:"grouping_value,omitempty"`
	Confidence         float64  `json:"confidence"`
	Evidence           []string `json:"evidence"`
	SourceID           string   `json:"source_id"`
	DataSource         string   `json:"data_source,omitempty"`
	Rationale          string   `json:"rationale"`
	PurchaseIntentFlag *string  `json:"purchase_intent_flag,omitempty"`
}

// Validate checks the fields reconciliation depends on.
func (c Candidate) Validate() error {
	if c.Section == "" {
		return fmt.Errorf("%w: section is required", ErrInvalidCandidate)
	}
	if c.TaxonomyID == "" {
		return fmt.Errorf("%w: taxonomy ID is required", ErrInvalidCandidate)
	}
	if c.Value == "" {
		return fmt.Errorf("%w: value is required", ErrInvalidCandidate)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be in [0.0, 1.0], got %v", ErrInvalidCandidate, c.Confidence)
	}
	return nil
}

// Action describes what reconciling a candidate did to its record.
type Action string

const (
	Created      Action = "created"
	Confirmed    Action = "confirmed"
	Contradicted Action = "contradicted"
	Unchanged    Action = "unchanged"
)

// Outcome reports the result of reconciling one candidate.
type Outcome struct {
	Key        string  `json:"key"`
	Action     Action  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// BatchItem pairs a candidate with its outcome or failure.
type BatchItem struct {
	Candidate Candidate `json:"candidate"`
	Outcome   *Outcome  `json:"outcome,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// BatchResult summarizes a reconciled batch. A candidate failure never
// aborts the batch; it is recorded and the remaining candidates still
// reconcile.
type BatchResult struct {
	Items        []BatchItem `json:"items"`
	Created      int         `json:"created"`
	Confirmed    int         `json:"confirmed"`
	Contradicted int         `json:"contradicted"`
	Unchanged    int         `json:"unchanged"`
	Failed       int         `json:"failed"`
}

// timestamp formats rationale entry prefixes.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Engine is the reconciliation contract consumed by the workflow layer.
type Engine interface {
	Reconcile(ctx context.Context, namespace string, candidate Candidate) (*Outcome, error)
	ReconcileBatch(ctx context.Context, namespace string, candidates []Candidate) (*BatchResult, error)
}
