package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/reconcile"
)

// PersistNode returns a state node that writes the episodic record for
// the processed input and assembles the workflow result. The episodic
// record preserves what was observed and decided for this input so the
// profile's semantic records can always be traced back to their
// sources.
func PersistNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		result, err := assembleResult(s)
		if err != nil {
			return s, fmt.Errorf("persist: %w", err)
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return s, fmt.Errorf("persist: %w: serialize episodic record: %w", ErrPersistFailed, err)
		}

		key := profile.EpisodicKey(result.InputID.String())
		if err := rt.Store.Put(ctx, result.Namespace, key, payload); err != nil {
			return s, fmt.Errorf("persist: %w: %w", ErrPersistFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "persist node complete",
			"input_id", result.InputID,
			"namespace", result.Namespace,
			"episodic_key", key,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}

// assembleResult builds the workflow result from whatever the earlier
// nodes left in the state bag. Candidates, judgments, and the batch
// result are all optional: an input whose stages proposed nothing
// still gets an episodic record.
func assembleResult(s state.State) (*WorkflowResult, error) {
	inputID, err := extractInputID(s)
	if err != nil {
		return nil, err
	}

	namespace, err := extractNamespace(s)
	if err != nil {
		return nil, err
	}

	messages, err := extractMessages(s)
	if err != nil {
		return nil, err
	}

	result := &WorkflowResult{
		InputID:      inputID,
		Namespace:    namespace,
		MessageCount: len(messages),
		CompletedAt:  time.Now(),
	}

	if val, ok := s.Get(KeySource); ok {
		if source, ok := val.(string); ok {
			result.Source = source
		}
	}

	if val, ok := s.Get(KeyJudged); ok {
		if judged, ok := val.([]analysis.Judged); ok {
			result.CandidateCount = len(judged)
			result.Blocked = blockedCount(judged)
		}
	}

	if val, ok := s.Get(KeyBatchResult); ok {
		if batch, ok := val.(*reconcile.BatchResult); ok {
			result.Batch = batch
		}
	}

	return result, nil
}
