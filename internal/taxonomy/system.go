package taxonomy

import (
	"context"
	"io"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
)

// System defines the public contract for taxonomy domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id string) (*Entry, error)
	Section(ctx context.Context, section string) ([]Entry, error)
	ValidateCandidate(ctx context.Context, id, value string) (*Entry, error)
	Import(ctx context.Context, r io.Reader) (int, error)
}
