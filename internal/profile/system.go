package profile

import (
	"context"
)

// System defines the public contract for profile domain operations.
// Read operations return decay-adjusted views; stored confidence is
// only rewritten when new evidence arrives through reconciliation.
type System interface {
	Handler() *Handler

	List(ctx context.Context, namespace string, filters Filters) ([]Record, error)
	Find(ctx context.Context, namespace, key string) (*Record, error)
	Summarize(ctx context.Context, namespace string) (*Summary, error)
	Delete(ctx context.Context, namespace, key string) error
}
