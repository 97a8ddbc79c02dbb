// Package memstore provides namespaced key-value persistence for
// profile memory records. Records are opaque JSON documents owned by
// the profile layer; the store only understands namespaces, keys, and
// the key prefix that marks a record as semantic, episodic, or tracker
// state.
package memstore

import (
	"context"
	"strings"
)

// Kind partitions records by key prefix.
type Kind string

const (
	Semantic Kind = "semantic"
	Episodic Kind = "episodic"
	Tracker  Kind = "tracker"
)

// UpdateFunc receives the current value of a record (nil and false when
// the record does not exist) and returns the value to write. Returning
// an error aborts the update and leaves the record untouched.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// Store is the persistence contract for profile memory records.
// Implementations must make Update atomic with respect to concurrent
// updates of the same (namespace, key).
type Store interface {
	// Put writes a record, replacing any existing value.
	Put(ctx context.Context, namespace, key string, value []byte) error
	// Get returns a record's value, or ErrNotFound.
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	// Delete removes a record. Deleting an absent record is not an error.
	Delete(ctx context.Context, namespace, key string) error
	// ListKeys returns all keys of a kind within a namespace.
	ListKeys(ctx context.Context, namespace string, kind Kind) ([]string, error)
	// Update applies a read-modify-write to a record atomically.
	Update(ctx context.Context, namespace, key string, fn UpdateFunc) error
}

// KindOfKey derives a record's kind from its key prefix. Keys without a
// recognized prefix default to Semantic.
func KindOfKey(key string) Kind {
	switch {
	case strings.HasPrefix(key, "episodic_"):
		return Episodic
	case strings.HasPrefix(key, "tracker_"):
		return Tracker
	default:
		return Semantic
	}
}
