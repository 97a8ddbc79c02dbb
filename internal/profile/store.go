package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/confidence"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
)

type system struct {
	store  memstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a profile system backed by the given record store.
func New(store memstore.Store, logger *slog.Logger) System {
	return NewWithClock(store, logger, time.Now)
}

// NewWithClock creates a profile system with an injected clock so
// decay-adjusted reads can be exercised at fixed points in time.
func NewWithClock(store memstore.Store, logger *slog.Logger, now func() time.Time) System {
	return &system{
		store:  store,
		logger: logger.With("system", "profile"),
		now:    now,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) List(ctx context.Context, namespace string, filters Filters) ([]Record, error) {
	if filters.Section != nil && !ValidSection(*filters.Section) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSection, *filters.Section)
	}

	keys, err := s.store.ListKeys(ctx, namespace, memstore.Semantic)
	if err != nil {
		return nil, fmt.Errorf("list profile keys: %w", err)
	}

	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		record, days, err := s.load(ctx, namespace, key)
		if err != nil {
			if errors.Is(err, memstore.ErrNotFound) {
				continue
			}
			return nil, err
		}

		if filters.Matches(*record, days) {
			records = append(records, *record)
		}
	}

	return records, nil
}

func (s *system) Find(ctx context.Context, namespace, key string) (*Record, error) {
	record, _, err := s.load(ctx, namespace, key)
	if err != nil {
		if errors.Is(err, memstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *system) Summarize(ctx context.Context, namespace string) (*Summary, error) {
	records, err := s.List(ctx, namespace, Filters{})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Namespace: namespace,
		Sections:  make(map[string]SectionSummary),
	}

	totals := make(map[string]float64)
	for _, record := range records {
		summary.TotalRecords++
		if record.NeedsReview {
			summary.NeedsReview++
		}

		section := summary.Sections[record.Section]
		section.Records++
		summary.Sections[record.Section] = section
		totals[record.Section] += record.Confidence
	}

	for name, section := range summary.Sections {
		section.AvgConfidence = totals[name] / float64(section.Records)
		summary.Sections[name] = section
	}

	return summary, nil
}

func (s *system) Delete(ctx context.Context, namespace, key string) error {
	if err := s.store.Delete(ctx, namespace, key); err != nil {
		return fmt.Errorf("delete profile record: %w", err)
	}

	s.logger.Info("profile record deleted", "namespace", namespace, "key", key)
	return nil
}

// load reads a record and returns the decay-adjusted view alongside
// the days elapsed since its last validation. The stored record is
// never rewritten here.
func (s *system) load(ctx context.Context, namespace, key string) (*Record, int, error) {
	value, err := s.store.Get(ctx, namespace, key)
	if err != nil {
		return nil, 0, err
	}

	var record Record
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, 0, fmt.Errorf("decode profile record %s: %w", key, err)
	}

	days := DaysSinceValidation(record.LastValidated, s.now())

	decayed, err := confidence.ApplyTemporalDecay(record.Confidence, days)
	if err != nil {
		return nil, 0, fmt.Errorf("decay record %s: %w", key, err)
	}

	record.Confidence = decayed
	record.NeedsReview = confidence.ShouldReview(decayed)
	record.DaysSinceValidation = days

	return &record, days, nil
}

// DaysSinceValidation returns the whole days elapsed between a record's
// last validation and now, floored at zero for clock skew.
func DaysSinceValidation(lastValidated, now time.Time) int {
	days := int(now.Sub(lastValidated).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
