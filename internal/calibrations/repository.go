package calibrations

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"scancal/pkg/caseconv"
	"scancal/pkg/pagination"
	"scancal/pkg/query"
	"scancal/pkg/repository"
	"scancal/pkg/segment"
	"scancal/pkg/storage"
	"scancal/workflow"
)

const captureContentType = "application/octet-stream"

type repo struct {
	pool         *pgxpool.Pool
	storage      storage.System
	logger       *slog.Logger
	pagination   pagination.Config
	batchWorkers int
}

// New creates a calibration repository implementing the System interface.
func New(
	pool *pgxpool.Pool,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	batchWorkers int,
) System {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	return &repo{
		pool:         pool,
		storage:      store,
		logger:       logger.With("system", "calibrations"),
		pagination:   pagination,
		batchWorkers: batchWorkers,
	}
}

func (r *repo) Handler(maxCaptureSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxCaptureSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Calibration], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Payload")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count calibrations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.pool, pageSQL, pageArgs, scanCalibration)
	if err != nil {
		return nil, fmt.Errorf("query calibrations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Calibration, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.pool, q, args, scanCalibration)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

// Create segments the payload, evaluates the conversion workflow, and
// records the run. Analysis failures are recorded as failed runs rather
// than rejected: the run itself is the evidence the operator needs.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Calibration, error) {
	if cmd.DeviceID == uuid.Nil || cmd.Payload == "" {
		return nil, ErrInvalidRequest
	}
	if cmd.Script == "" {
		cmd.Script = caseconv.ScriptLatin
	}
	if !caseconv.Known(cmd.Script) {
		return nil, ErrUnknownScript
	}

	cells := segment.Cells(cmd.Payload)
	state, evalErr := workflow.Evaluate(workflow.State{
		Cells:            cells,
		Script:           cmd.Script,
		ReportedCapsLock: cmd.ReportedCapsLock,
	})
	if evalErr != nil {
		r.logger.Warn("calibration analysis failed", "device", cmd.DeviceID, "error", evalErr)
	}

	id := uuid.New()

	var captureKey *string
	if len(cmd.Capture) > 0 {
		key := buildCaptureKey(id)
		if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Capture), captureContentType); err != nil {
			return nil, fmt.Errorf("upload capture: %w", err)
		}
		captureKey = &key
	}

	q := `
		INSERT INTO calibrations(id, device_id, script, payload, segment_length, upper_conversion, lower_conversion, caps_lock_indicated, reported_caps_lock, outcome, capture_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, device_id, script, payload, segment_length, upper_conversion, lower_conversion, caps_lock_indicated, reported_caps_lock, outcome, capture_key, created_at`

	insertArgs := []any{
		id,
		cmd.DeviceID,
		cmd.Script,
		cmd.Payload,
		len(cells),
		state.UpperConversion,
		state.LowerConversion,
		state.CapsLockIndicated,
		cmd.ReportedCapsLock,
		state.Outcome,
		captureKey,
	}

	c, err := repository.WithTx(ctx, r.pool, func(tx pgx.Tx) (Calibration, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCalibration)
	})

	if err != nil {
		if captureKey != nil {
			if delErr := r.storage.Delete(ctx, *captureKey); delErr != nil {
				r.logger.Warn("compensating capture delete failed", "key", *captureKey, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"calibration recorded",
		"id", c.ID,
		"device", c.DeviceID,
		"outcome", c.Outcome,
	)
	return &c, nil
}

// CreateBatch records a set of runs concurrently, bounded by the configured
// worker count. Each command succeeds or fails independently; results are
// returned in submission order.
func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.batchWorkers)

	for i, cmd := range cmds {
		g.Go(func() error {
			c, err := r.Create(gctx, cmd)
			if err != nil {
				results[i] = BatchResult{Error: err.Error()}
				return nil
			}
			results[i] = BatchResult{Calibration: c}
			return nil
		})
	}

	// Workers report per-run failures through their results slot and always
	// return nil, so Wait carries no error of its own.
	_ = g.Wait()
	return results
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.pool, func(tx pgx.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM calibrations WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if c.CaptureKey != nil {
		if delErr := r.storage.Delete(ctx, *c.CaptureKey); delErr != nil {
			r.logger.Warn(
				"capture delete failed after DB delete",
				"key", *c.CaptureKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("calibration deleted", "id", id)
	return nil
}

func (r *repo) DownloadCapture(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.CaptureKey == nil {
		return nil, ErrNoCapture
	}

	result, err := r.storage.Download(ctx, *c.CaptureKey)
	if err != nil {
		return nil, fmt.Errorf("download capture %s: %w", *c.CaptureKey, err)
	}

	return result, nil
}

func buildCaptureKey(id uuid.UUID) string {
	return fmt.Sprintf("captures/%s.bin", id)
}
