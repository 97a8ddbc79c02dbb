package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
)

// JudgeNode returns a state node that scores the evidence quality of
// every candidate and applies the quality adjustment. Individual judge
// failures degrade to the neutral evaluation inside JudgeAll; only an
// invalid candidate fails the node.
func JudgeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		candidates, err := extractCandidates(s)
		if err != nil {
			return s, fmt.Errorf("judge: %w", err)
		}

		judged, err := analysis.JudgeAll(
			ctx, rt.Judge, candidates,
			rt.JudgeWorkers, rt.BlockThreshold, rt.Logger,
		)
		if err != nil {
			return s, fmt.Errorf("judge: %w: %w", ErrJudgeFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "judge node complete",
			"candidate_count", len(judged),
			"blocked", blockedCount(judged),
		)

		s = s.Set(KeyJudged, judged)
		return s, nil
	})
}

func extractCandidates(s state.State) ([]analysis.Candidate, error) {
	val, ok := s.Get(KeyCandidates)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrJudgeFailed, KeyCandidates)
	}

	candidates, ok := val.([]analysis.Candidate)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []analysis.Candidate", ErrJudgeFailed, KeyCandidates)
	}

	return candidates, nil
}
