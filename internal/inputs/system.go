package inputs

import (
	"context"

	"github.com/google/uuid"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
)

// System defines the public contract for input domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Input], error)

	Find(ctx context.Context, id uuid.UUID) (*Input, error)
	Create(ctx context.Context, cmd CreateCommand) (*Input, error)
	Payload(ctx context.Context, id uuid.UUID) ([]Message, error)
	Pending(ctx context.Context, namespace string) ([]Input, error)
	MarkStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
