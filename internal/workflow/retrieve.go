package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
)

// RetrieveNode returns a state node that loads the input record and its
// message payload from storage, seeding the state bag for the analysis
// stages.
func RetrieveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		inputID, err := extractInputID(s)
		if err != nil {
			return s, fmt.Errorf("retrieve: %w", err)
		}

		input, err := rt.Inputs.Find(ctx, inputID)
		if err != nil {
			return s, fmt.Errorf("retrieve: %w: %w", ErrInputNotFound, err)
		}

		messages, err := rt.Inputs.Payload(ctx, inputID)
		if err != nil {
			return s, fmt.Errorf("retrieve: load payload: %w", err)
		}

		// decay-adjusted view; a failure here degrades to analysis
		// without profile context rather than failing the input
		existing, err := rt.Profiles.List(ctx, input.Namespace, profile.Filters{})
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "profile context unavailable",
				"namespace", input.Namespace,
				"error", err,
			)
			existing = nil
		}

		rt.Logger.InfoContext(
			ctx, "retrieve node complete",
			"input_id", inputID,
			"namespace", input.Namespace,
			"message_count", len(messages),
			"profile_records", len(existing),
		)

		s = s.Set(KeyNamespace, input.Namespace)
		s = s.Set(KeySource, input.Source)
		s = s.Set(KeyMessages, messages)
		s = s.Set(KeyProfile, existing)

		return s, nil
	})
}

func extractInputID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyInputID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrInputNotFound, KeyInputID)
	}

	inputID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrInputNotFound, KeyInputID)
	}

	return inputID, nil
}

func stringFromState(s state.State, key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

func extractNamespace(s state.State) (string, error) {
	val, ok := s.Get(KeyNamespace)
	if !ok {
		return "", fmt.Errorf("missing %s in state", KeyNamespace)
	}

	namespace, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s is not string", KeyNamespace)
	}

	return namespace, nil
}
