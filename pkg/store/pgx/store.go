package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// GraphStore implements store.Storage on PostgreSQL. All relationship
// mutations run in a transaction that takes a row lock on the
// relationship and appends the log entry before committing.
type GraphStore struct {
	conn pgxIConn
}

// New creates a GraphStore on an existing connection or pool.
func New(conn pgxIConn) *GraphStore {
	return &GraphStore{conn: conn}
}

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// mapPgError converts constraint violations into the shared taxonomy so
// handlers can surface them as client errors.
func mapPgError(err error, context string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, context)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s already exists", common.ErrValidation, context)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", common.ErrValidation, context, pgErr.ConstraintName)
		}
	}
	return err
}
