package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TrackerKey is the reserved key holding the set of consumed input IDs
// for a namespace.
const TrackerKey = "tracker_processed_inputs"

type trackerRecord struct {
	Consumed map[string]time.Time `json:"consumed"`
}

// MarkInputsConsumed records input IDs as consumed in a namespace's
// tracker record. Already-consumed IDs keep their original timestamp,
// so marking is idempotent and the consumed set only grows.
func MarkInputsConsumed(ctx context.Context, store Store, namespace string, inputIDs []string, now time.Time) error {
	if len(inputIDs) == 0 {
		return nil
	}

	return store.Update(ctx, namespace, TrackerKey, func(current []byte, exists bool) ([]byte, error) {
		record := trackerRecord{Consumed: make(map[string]time.Time)}
		if exists {
			if err := json.Unmarshal(current, &record); err != nil {
				return nil, fmt.Errorf("decode tracker record: %w", err)
			}
			if record.Consumed == nil {
				record.Consumed = make(map[string]time.Time)
			}
		}

		for _, id := range inputIDs {
			if _, ok := record.Consumed[id]; !ok {
				record.Consumed[id] = now.UTC()
			}
		}

		return json.Marshal(record)
	})
}

// ConsumedInputs returns the consumed input IDs for a namespace with
// the time each was first consumed. A namespace with no tracker record
// has consumed nothing.
func ConsumedInputs(ctx context.Context, store Store, namespace string) (map[string]time.Time, error) {
	value, err := store.Get(ctx, namespace, TrackerKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return map[string]time.Time{}, nil
		}
		return nil, err
	}

	var record trackerRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, fmt.Errorf("decode tracker record: %w", err)
	}
	if record.Consumed == nil {
		record.Consumed = make(map[string]time.Time)
	}

	return record.Consumed, nil
}
