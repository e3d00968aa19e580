package calibrations

import (
	"context"

	"github.com/google/uuid"

	"scancal/pkg/pagination"
	"scancal/pkg/storage"
)

// System defines the public contract for calibration domain operations.
type System interface {
	Handler(maxCaptureSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Calibration], error)

	Find(ctx context.Context, id uuid.UUID) (*Calibration, error)
	Create(ctx context.Context, cmd CreateCommand) (*Calibration, error)
	CreateBatch(ctx context.Context, cmds []CreateCommand) []BatchResult
	Delete(ctx context.Context, id uuid.UUID) error
	DownloadCapture(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error)
}
