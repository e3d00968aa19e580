package devices

import (
	"context"

	"github.com/google/uuid"

	"scancal/pkg/pagination"
)

// System defines the public contract for device domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Device], error)

	Find(ctx context.Context, id uuid.UUID) (*Device, error)
	Create(ctx context.Context, cmd CreateCommand) (*Device, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
