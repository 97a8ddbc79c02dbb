package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/reconcile"
)

// ReconcileNode returns a state node that merges the unblocked judged
// candidates into the stored profile. Blocked candidates never reach
// the store; their evidence was judged too weak to act on.
func ReconcileNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		judged, err := extractJudged(s)
		if err != nil {
			return s, fmt.Errorf("reconcile: %w", err)
		}

		namespace, err := extractNamespace(s)
		if err != nil {
			return s, fmt.Errorf("reconcile: %w", err)
		}

		inputID, err := extractInputID(s)
		if err != nil {
			return s, fmt.Errorf("reconcile: %w", err)
		}

		source, _ := stringFromState(s, KeySource)
		candidates := toCandidates(judged, inputID.String(), source)

		batch, err := rt.Engine.ReconcileBatch(ctx, namespace, candidates)
		if err != nil {
			return s, fmt.Errorf("reconcile: %w: %w", ErrReconcileFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "reconcile node complete",
			"namespace", namespace,
			"created", batch.Created,
			"confirmed", batch.Confirmed,
			"contradicted", batch.Contradicted,
			"unchanged", batch.Unchanged,
			"failed", batch.Failed,
		)

		s = s.Set(KeyBatchResult, batch)
		return s, nil
	})
}

func extractJudged(s state.State) ([]analysis.Judged, error) {
	val, ok := s.Get(KeyJudged)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrReconcileFailed, KeyJudged)
	}

	judged, ok := val.([]analysis.Judged)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []analysis.Judged", ErrReconcileFailed, KeyJudged)
	}

	return judged, nil
}

func toCandidates(judged []analysis.Judged, sourceID, dataSource string) []reconcile.Candidate {
	candidates := make([]reconcile.Candidate, 0, len(judged))
	for _, j := range judged {
		if j.Blocked {
			continue
		}

		candidates = append(candidates, reconcile.Candidate{
			Section:            j.Candidate.Section,
			TaxonomyID:         j.Candidate.TaxonomyID,
			Value:              j.Candidate.Value,
			CategoryPath:       j.Candidate.CategoryPath,
			Tiers:              j.Candidate.Tiers,
			GroupingKey:        j.Candidate.GroupingKey,
			GroupingValue:      j.Candidate.GroupingValue,
			Confidence:         j.Adjusted,
			Evidence:           j.Candidate.Evidence,
			SourceID:           sourceID,
			DataSource:         dataSource,
			Rationale:          j.Candidate.Rationale,
			PurchaseIntentFlag: j.Candidate.PurchaseIntentFlag,
		})
	}
	return candidates
}
