// Package analysis implements the extraction stages that read message
// batches and propose candidate classifications, and the judge stage
// that scores the quality of each candidate's supporting evidence.
package analysis

import (
	"context"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
)

// Candidate is a classification proposed by a section stage for a
// single message batch.
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
	Rationale          string   `json:"rationale"`
	PurchaseIntentFlag *string  `json:"purchase_intent_flag,omitempty"`
}

// Evaluation is the judge's assessment of one candidate's evidence.
type Evaluation struct {
	QualityScore float64 `json:"quality_score"`
	Category     string  `json:"category"`
	Rationale    string  `json:"rationale"`
}

// NeutralEvaluation is substituted when the judge fails on a
// candidate. Judging is advisory; a judge outage must degrade to
// neutral scoring rather than block profiling.
var NeutralEvaluation = Evaluation{
	QualityScore: 0.7,
	Category:     "unknown",
	Rationale:    "judge unavailable, neutral default applied",
}

// Producer extracts candidate classifications for one section stage
// from a message batch. The existing records give the stage the
// current decay-adjusted profile state so it can refine rather than
// rediscover; only records in the stage's section reach the prompt.
type Producer interface {
	Produce(ctx context.Context, stage prompts.Stage, messages []inputs.Message, existing []profile.Record) ([]Candidate, error)
}

// Judge scores the evidence quality of a single candidate.
type Judge interface {
	Evaluate(ctx context.Context, candidate Candidate) (Evaluation, error)
}

// Judged pairs a candidate with its evaluation and the
// quality-adjusted confidence the reconciler should use.
type Judged struct {
	Candidate  Candidate  `json:"candidate"`
	Evaluation Evaluation `json:"evaluation"`
	Adjusted   float64    `json:"adjusted_confidence"`
	Blocked    bool       `json:"blocked"`
}
