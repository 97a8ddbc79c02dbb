package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/reconcile"
)

// State bag keys shared between workflow nodes.
const (
	KeyInputID     = "input_id"
	KeyNamespace   = "namespace"
	KeySource      = "source"
	KeyMessages    = "messages"
	KeyProfile     = "profile"
	KeyCandidates  = "candidates"
	KeyJudged      = "judged"
	KeyBatchResult = "batch_result"
	KeyResult      = "result"
)

// WorkflowResult summarizes one input's trip through the profiling
// graph: how many messages it carried, what the stages proposed, what
// the judge blocked, and what reconciliation did to the profile.
type WorkflowResult struct {
	InputID        uuid.UUID              `json:"input_id"`
	Namespace      string                 `json:"namespace"`
	Source         string                 `json:"source"`
	MessageCount   int                    `json:"message_count"`
	CandidateCount int                    `json:"candidate_count"`
	Blocked        int                    `json:"blocked"`
	Batch          *reconcile.BatchResult `json:"batch,omitempty"`
	CompletedAt    time.Time              `json:"completed_at"`
}

func blockedCount(judged []analysis.Judged) int {
	n := 0
	for _, j := range judged {
		if j.Blocked {
			n++
		}
	}
	return n
}
