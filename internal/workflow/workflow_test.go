package workflow_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/reconcile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/workflow"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
)

type fakeInputs struct {
	input    *inputs.Input
	messages []inputs.Message
}

func (f *fakeInputs) Handler(maxUploadSize int64) *inputs.Handler { return nil }

func (f *fakeInputs) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters inputs.Filters,
) (*pagination.PageResult[inputs.Input], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInputs) Find(ctx context.Context, id uuid.UUID) (*inputs.Input, error) {
	if f.input == nil || f.input.ID != id {
		return nil, inputs.ErrNotFound
	}
	return f.input, nil
}

func (f *fakeInputs) Create(ctx context.Context, cmd inputs.CreateCommand) (*inputs.Input, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInputs) Payload(ctx context.Context, id uuid.UUID) ([]inputs.Message, error) {
	return f.messages, nil
}

func (f *fakeInputs) Pending(ctx context.Context, namespace string) ([]inputs.Input, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInputs) MarkStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

func (f *fakeInputs) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

type fakeProducer struct {
	byStage map[prompts.Stage][]analysis.Candidate

	seenRecords atomic.Int32
}

func (f *fakeProducer) Produce(
	ctx context.Context,
	stage prompts.Stage,
	messages []inputs.Message,
	existing []profile.Record,
) ([]analysis.Candidate, error) {
	f.seenRecords.Store(int32(len(existing)))
	return f.byStage[stage], nil
}

type fakeJudge struct {
	score float64
}

func (f *fakeJudge) Evaluate(ctx context.Context, c analysis.Candidate) (analysis.Evaluation, error) {
	return analysis.Evaluation{QualityScore: f.score, Category: "direct"}, nil
}

func testRuntime(t *testing.T, producer analysis.Producer, judge analysis.Judge) (*workflow.Runtime, *memstore.MemoryStore, uuid.UUID) {
	t.Helper()

	store := memstore.NewMemoryStore()
	logger := slog.New(slog.DiscardHandler)

	inputID := uuid.New()
	fi := &fakeInputs{
		input: &inputs.Input{
			ID:        inputID,
			Namespace: "user-1",
			Source:    "gmail",
			Status:    inputs.StatusPending,
		},
		messages: []inputs.Message{
			{ID: "m1", Subject: "Trail shoes order", Body: "Your trail shoes shipped."},
			{ID: "m2", Snippet: "Weekly cycling digest"},
		},
	}

	rt := &workflow.Runtime{
		Inputs:         fi,
		Profiles:       profile.New(store, logger),
		Producer:       producer,
		Judge:          judge,
		Engine:         reconcile.New(store, logger),
		Store:          store,
		JudgeWorkers:   2,
		BlockThreshold: 0.15,
		Logger:         logger,
	}

	return rt, store, inputID
}

func TestExecuteProfilesInput(t *testing.T) {
	producer := &fakeProducer{byStage: map[prompts.Stage][]analysis.Candidate{
		prompts.StageInterests: {
			{
				Section:    "interests",
				TaxonomyID: "186",
				Value:      "Hiking",
				Confidence: 0.8,
				Evidence:   []string{"trail shoes order confirmation"},
				Rationale:  "purchased hiking equipment",
			},
		},
	}}
	judge := &fakeJudge{score: 0.95}

	rt, store, inputID := testRuntime(t, producer, judge)

	result, err := workflow.Execute(context.Background(), rt, inputID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if result.InputID != inputID {
		t.Errorf("input ID = %v, want %v", result.InputID, inputID)
	}
	if result.MessageCount != 2 {
		t.Errorf("message count = %d, want 2", result.MessageCount)
	}
	if result.CandidateCount != 1 {
		t.Errorf("candidate count = %d, want 1", result.CandidateCount)
	}
	if result.Blocked != 0 {
		t.Errorf("blocked = %d, want 0", result.Blocked)
	}
	if result.Batch == nil || result.Batch.Created != 1 {
		t.Fatalf("batch = %+v, want 1 created", result.Batch)
	}

	// The semantic record landed in the store.
	semantic, err := store.ListKeys(context.Background(), "user-1", memstore.Semantic)
	if err != nil {
		t.Fatalf("list semantic keys: %v", err)
	}
	if len(semantic) != 1 {
		t.Fatalf("semantic keys = %v, want one", semantic)
	}

	// So did the episodic record for the input.
	episodicKey := profile.EpisodicKey(inputID.String())
	if _, err := store.Get(context.Background(), "user-1", episodicKey); err != nil {
		t.Errorf("episodic record missing: %v", err)
	}
}

func TestExecuteFeedsProfileStateToStages(t *testing.T) {
	producer := &fakeProducer{byStage: map[prompts.Stage][]analysis.Candidate{
		prompts.StageInterests: {
			{
				Section:    "interests",
				TaxonomyID: "186",
				Value:      "Hiking",
				Confidence: 0.8,
				Evidence:   []string{"trail shoes order confirmation"},
			},
		},
	}}
	judge := &fakeJudge{score: 0.95}

	rt, _, inputID := testRuntime(t, producer, judge)

	// First pass starts from an empty profile.
	if _, err := workflow.Execute(context.Background(), rt, inputID); err != nil {
		t.Fatalf("first execute failed: %v", err)
	}
	if got := producer.seenRecords.Load(); got != 0 {
		t.Errorf("first pass records = %d, want 0", got)
	}

	// The record created above reaches the stages on the next pass.
	if _, err := workflow.Execute(context.Background(), rt, inputID); err != nil {
		t.Fatalf("second execute failed: %v", err)
	}
	if got := producer.seenRecords.Load(); got != 1 {
		t.Errorf("second pass records = %d, want 1", got)
	}
}

func TestExecuteBlocksWeakEvidence(t *testing.T) {
	producer := &fakeProducer{byStage: map[prompts.Stage][]analysis.Candidate{
		prompts.StageInterests: {
			{
				Section:    "interests",
				TaxonomyID: "186",
				Value:      "Hiking",
				Confidence: 0.8,
				Evidence:   []string{"mentioned outdoors once"},
			},
		},
	}}
	judge := &fakeJudge{score: 0.1}

	rt, store, inputID := testRuntime(t, producer, judge)

	result, err := workflow.Execute(context.Background(), rt, inputID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if result.Blocked != 1 {
		t.Errorf("blocked = %d, want 1", result.Blocked)
	}
	if result.Batch == nil || len(result.Batch.Items) != 0 {
		t.Fatalf("batch = %+v, want empty", result.Batch)
	}

	// Blocked candidates never reach the store.
	semantic, err := store.ListKeys(context.Background(), "user-1", memstore.Semantic)
	if err != nil {
		t.Fatalf("list semantic keys: %v", err)
	}
	if len(semantic) != 0 {
		t.Errorf("semantic keys = %v, want none", semantic)
	}
}

func TestExecuteNoCandidatesSkipsToPersist(t *testing.T) {
	producer := &fakeProducer{byStage: map[prompts.Stage][]analysis.Candidate{}}
	judge := &fakeJudge{score: 0.9}

	rt, store, inputID := testRuntime(t, producer, judge)

	result, err := workflow.Execute(context.Background(), rt, inputID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if result.CandidateCount != 0 {
		t.Errorf("candidate count = %d, want 0", result.CandidateCount)
	}
	if result.Batch != nil {
		t.Errorf("batch = %+v, want nil", result.Batch)
	}

	// Even an empty input gets an episodic record.
	episodicKey := profile.EpisodicKey(inputID.String())
	if _, err := store.Get(context.Background(), "user-1", episodicKey); err != nil {
		t.Errorf("episodic record missing: %v", err)
	}
}

func TestExecuteUnknownInput(t *testing.T) {
	rt, _, _ := testRuntime(t, &fakeProducer{}, &fakeJudge{score: 0.9})

	if _, err := workflow.Execute(context.Background(), rt, uuid.New()); err == nil {
		t.Error("expected error for unknown input")
	}
}
