// Package workflow orchestrates the per-input profiling pipeline as a
// state graph: retrieve the message batch, run the section analysis
// stages, judge evidence quality, reconcile the surviving candidates
// into the profile, and persist the episodic record.
package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
)

// Execute runs the profiling workflow for a single input. It builds
// the state graph (retrieve → analyze → judge? → reconcile? → persist),
// executes it, and extracts the WorkflowResult from the final state.
// Inputs whose stages propose no candidates skip straight to persist.
func Execute(ctx context.Context, rt *Runtime, inputID uuid.UUID) (*WorkflowResult, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyInputID, inputID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("profile-input")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("retrieve", RetrieveNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("analyze", AnalyzeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("judge", JudgeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("reconcile", ReconcileNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("persist", PersistNode(rt)); err != nil {
		return nil, err
	}

	// retrieve → analyze (unconditional)
	if err := graph.AddEdge("retrieve", "analyze", nil); err != nil {
		return nil, err
	}

	// analyze → judge (when any candidates were proposed)
	if err := graph.AddEdge("analyze", "judge", hasCandidates); err != nil {
		return nil, err
	}

	// analyze → persist (when nothing was proposed)
	if err := graph.AddEdge("analyze", "persist", state.Not(hasCandidates)); err != nil {
		return nil, err
	}

	// judge → reconcile (unconditional)
	if err := graph.AddEdge("judge", "reconcile", nil); err != nil {
		return nil, err
	}

	// reconcile → persist (unconditional)
	if err := graph.AddEdge("reconcile", "persist", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("retrieve"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("persist"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*WorkflowResult, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(*WorkflowResult)
	if !ok {
		return nil, fmt.Errorf("%s is not *WorkflowResult", KeyResult)
	}

	return result, nil
}

func hasCandidates(s state.State) bool {
	val, ok := s.Get(KeyCandidates)
	if !ok {
		return false
	}

	candidates, ok := val.([]analysis.Candidate)
	if !ok {
		return false
	}

	return len(candidates) > 0
}
