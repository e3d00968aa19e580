package devices

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scancal/pkg/pagination"
	"scancal/pkg/query"
	"scancal/pkg/repository"
)

type repo struct {
	pool       *pgxpool.Pool
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a device repository implementing the System interface.
func New(
	pool *pgxpool.Pool,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		pool:       pool,
		logger:     logger.With("system", "devices"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Device], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Vendor", "Model")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count devices: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.pool, pageSQL, pageArgs, scanDevice)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Device, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.pool, q, args, scanDevice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Device, error) {
	if cmd.Name == "" || cmd.Vendor == "" || cmd.Model == "" {
		return nil, ErrInvalidRequest
	}
	if cmd.KeyboardLayout == "" {
		cmd.KeyboardLayout = "en-US"
	}

	q := `
		INSERT INTO devices(id, name, vendor, model, keyboard_layout)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, vendor, model, keyboard_layout, registered_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Name,
		cmd.Vendor,
		cmd.Model,
		cmd.KeyboardLayout,
	}

	d, err := repository.WithTx(ctx, r.pool, func(tx pgx.Tx) (Device, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanDevice)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("device registered", "id", d.ID, "name", d.Name)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.pool, func(tx pgx.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM devices WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("device deleted", "id", id)
	return nil
}
