package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/confidence"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
)

type engine struct {
	store  memstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a reconciliation engine backed by the given record store.
func New(store memstore.Store, logger *slog.Logger) Engine {
	return NewWithClock(store, logger, time.Now)
}

// NewWithClock creates a reconciliation engine with an injected clock.
func NewWithClock(store memstore.Store, logger *slog.Logger, now func() time.Time) Engine {
	return &engine{
		store:  store,
		logger: logger.With("system", "reconcile"),
		now:    now,
	}
}

func (e *engine) Reconcile(ctx context.Context, namespace string, candidate Candidate) (*Outcome, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	key := profile.BuildKey(candidate.Section, candidate.TaxonomyID, candidate.Value)
	outcome := &Outcome{Key: key}

	err := e.store.Update(ctx, namespace, key, func(current []byte, exists bool) ([]byte, error) {
		now := e.now().UTC()

		if !exists {
			record, err := e.create(namespace, key, candidate, now)
			if err != nil {
				return nil, err
			}
			outcome.Action = Created
			outcome.Confidence = record.Confidence
			return json.Marshal(record)
		}

		var record profile.Record
		if err := json.Unmarshal(current, &record); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", key, err)
		}

		action, err := e.apply(&record, candidate, now)
		if err != nil {
			return nil, err
		}
		outcome.Action = action
		outcome.Confidence = record.Confidence
		return json.Marshal(&record)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("candidate reconciled",
		"namespace", namespace,
		"key", key,
		"action", outcome.Action,
		"confidence", outcome.Confidence,
	)
	return outcome, nil
}

func (e *engine) ReconcileBatch(ctx context.Context, namespace string, candidates []Candidate) (*BatchResult, error) {
	// Cancellation is honored between inputs by the run controller, not
	// between candidates; abandoning a batch midway would leave the
	// input partially applied with no consumed marker.
	result := &BatchResult{Items: make([]BatchItem, 0, len(candidates))}

	for _, candidate := range candidates {
		item := BatchItem{Candidate: candidate}

		outcome, err := e.Reconcile(ctx, namespace, candidate)
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			e.logger.Warn("candidate reconciliation failed",
				"namespace", namespace,
				"section", candidate.Section,
				"value", candidate.Value,
				"error", err,
			)
		} else {
			item.Outcome = outcome
			switch outcome.Action {
			case Created:
				result.Created++
			case Confirmed:
				result.Confirmed++
			case Contradicted:
				result.Contradicted++
			case Unchanged:
				result.Unchanged++
			}
		}

		result.Items = append(result.Items, item)
	}

	return result, nil
}

// create builds a fresh record. The first observation sets confidence
// directly rather than confirming an existing score.
func (e *engine) create(namespace, key string, candidate Candidate, now time.Time) (*profile.Record, error) {
	initial, err := confidence.Initialize(candidate.Confidence)
	if err != nil {
		return nil, err
	}

	supporting := dedupe(nil, candidate.Evidence)
	record := &profile.Record{
		Key:                   key,
		Namespace:             namespace,
		Section:               candidate.Section,
		TaxonomyID:            candidate.TaxonomyID,
		Value:                 candidate.Value,
		CategoryPath:          candidate.CategoryPath,
		Tiers:                 candidate.Tiers,
		GroupingKey:           candidate.GroupingKey,
		GroupingValue:         candidate.GroupingValue,
		DataSource:            candidate.DataSource,
		PurchaseIntentFlag:    candidate.PurchaseIntentFlag,
		Confidence:            initial,
		SupportingEvidence:    supporting,
		ContradictingEvidence: []string{},
		EvidenceCount:         len(supporting),
		SourceIDs:             dedupe(nil, sourceIDs(candidate)),
		Rationale:             rationaleEntry(candidate.Rationale, now),
		NeedsReview:           confidence.ShouldReview(initial),
		FirstObserved:         now,
		LastUpdated:           now,
		LastValidated:         now,
	}
	return record, nil
}

// apply folds a candidate into an existing record. A candidate whose
// evidence and source are already on the record is a reprocessed
// input and leaves the record untouched; evidence already counted
// must not move confidence a second time.
func (e *engine) apply(record *profile.Record, candidate Candidate, now time.Time) (Action, error) {
	kind := confidence.Classify(record.Value, candidate.Value)

	held := record.SupportingEvidence
	if kind != confidence.Confirming {
		held = record.ContradictingEvidence
	}
	if !introducesEvidence(held, record.SourceIDs, candidate) {
		return Unchanged, nil
	}

	next, err := confidence.Update(record.Confidence, candidate.Confidence, kind)
	if err != nil {
		return "", err
	}

	var action Action
	switch kind {
	case confidence.Confirming:
		record.SupportingEvidence = dedupe(record.SupportingEvidence, candidate.Evidence)
		action = Confirmed
	default:
		record.ContradictingEvidence = dedupe(record.ContradictingEvidence, candidate.Evidence)
		action = Contradicted
	}

	record.Confidence = next
	record.EvidenceCount = len(record.SupportingEvidence) + len(record.ContradictingEvidence)
	record.SourceIDs = dedupe(record.SourceIDs, sourceIDs(candidate))
	record.NeedsReview = confidence.ShouldReview(next)
	record.LastValidated = now
	record.LastUpdated = now

	if entry := rationaleEntry(candidate.Rationale, now); entry != "" {
		if record.Rationale != "" {
			record.Rationale += "\n"
		}
		record.Rationale += entry
	}

	return action, nil
}

// introducesEvidence reports whether the candidate carries any evidence
// id or source id the record has not already absorbed.
func introducesEvidence(held, sources []string, candidate Candidate) bool {
	for _, id := range candidate.Evidence {
		if id != "" && !contains(held, id) {
			return true
		}
	}
	if candidate.SourceID != "" && !contains(sources, candidate.SourceID) {
		return true
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func rationaleEntry(rationale string, now time.Time) string {
	if rationale == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", timestamp(now), rationale)
}

func sourceIDs(candidate Candidate) []string {
	if candidate.SourceID == "" {
		return nil
	}
	return []string{candidate.SourceID}
}

// dedupe appends additions to existing, preserving first-seen order
// and dropping duplicates and empty strings.
func dedupe(existing, additions []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(additions))
	out := make([]string, 0, len(existing)+len(additions))

	for _, lists := range [][]string{existing, additions} {
		for _, v := range lists {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
