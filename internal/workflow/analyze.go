package workflow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
)

// AnalyzeNode returns a state node that runs every section stage over
// the message batch concurrently and flattens their candidates in
// stage order. A failure in any stage fails the input.
func AnalyzeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		messages, err := extractMessages(s)
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		candidates, err := analyzeSections(ctx, rt, messages, extractProfile(s))
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "analyze node complete",
			"message_count", len(messages),
			"candidate_count", len(candidates),
		)

		s = s.Set(KeyCandidates, candidates)
		return s, nil
	})
}

func extractMessages(s state.State) ([]inputs.Message, error) {
	val, ok := s.Get(KeyMessages)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAnalyzeFailed, KeyMessages)
	}

	messages, ok := val.([]inputs.Message)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []inputs.Message", ErrAnalyzeFailed, KeyMessages)
	}

	return messages, nil
}

// extractProfile returns the existing records seeded by the retrieve
// node. Absence is fine; stages then run without profile context.
func extractProfile(s state.State) []profile.Record {
	val, ok := s.Get(KeyProfile)
	if !ok {
		return nil
	}
	records, _ := val.([]profile.Record)
	return records
}

func analyzeSections(ctx context.Context, rt *Runtime, messages []inputs.Message, existing []profile.Record) ([]analysis.Candidate, error) {
	stages := prompts.SectionStages()
	results := make([][]analysis.Candidate, len(stages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(stages))

	for i, stage := range stages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			candidates, err := rt.Producer.Produce(gctx, stage, messages, existing)
			if err != nil {
				return fmt.Errorf("stage %s: %w", stage, err)
			}

			results[i] = candidates
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyzeFailed, err)
	}

	var flattened []analysis.Candidate
	for _, r := range results {
		flattened = append(flattened, r...)
	}

	return flattened, nil
}
