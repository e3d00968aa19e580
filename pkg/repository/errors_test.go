package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"scancal/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapErrorNil(t *testing.T) {
	if got := repository.MapError(nil, errNotFound, errDuplicate); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestMapErrorNoRows(t *testing.T) {
	err := fmt.Errorf("query device: %w", pgx.ErrNoRows)
	if got := repository.MapError(err, errNotFound, errDuplicate); !errors.Is(got, errNotFound) {
		t.Errorf("got %v, want %v", got, errNotFound)
	}
}

func TestMapErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	if got := repository.MapError(pgErr, errNotFound, errDuplicate); !errors.Is(got, errDuplicate) {
		t.Errorf("got %v, want %v", got, errDuplicate)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	orig := errors.New("connection reset")
	if got := repository.MapError(orig, errNotFound, errDuplicate); !errors.Is(got, orig) {
		t.Errorf("got %v, want %v", got, orig)
	}

	other := &pgconn.PgError{Code: "23503"}
	if got := repository.MapError(other, errNotFound, errDuplicate); !errors.Is(got, other) {
		t.Errorf("got %v, want passthrough of %v", got, other)
	}
}
