// Package database provides PostgreSQL connection pooling with lifecycle coordination.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"scancal/pkg/lifecycle"
)

// System manages the connection pool and lifecycle coordination.
type System interface {
	// Pool returns the underlying pgx connection pool.
	Pool() *pgxpool.Pool
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	pool        *pgxpool.Pool
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a database system with the given configuration.
// It parses the DSN and constructs the pool, but does not establish
// a connection until Start is called.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (System, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return &database{
		pool:        pool,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database pool")

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.pool.Ping(pingCtx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.logger.Info("database pool established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database pool")
		d.pool.Close()
		d.logger.Info("database pool closed")
	})

	return nil
}
