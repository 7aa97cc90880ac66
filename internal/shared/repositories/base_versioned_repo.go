package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// DefaultMaxRetries bounds the optimistic-locking loop in UpdateWithRetry.
const DefaultMaxRetries = 3

// BaseVersionedRepo is embedded by repositories whose table carries a
// row_version column. It owns the select-by-id statement, the row scanner and
// the conditional update, and exposes them as GetByID and UpdateWithRetry.
type BaseVersionedRepo[T EntityWithVersion] struct {
	db              DB
	selectByID      string
	scan            func(row pgx.Row) (T, error)
	updateIfVersion UpdateIfVersionFunc[T]
}

func NewBaseRepo[T EntityWithVersion](
	db DB,
	selectByID string,
	scan func(pgx.Row) (T, error),
	updateIfVersion UpdateIfVersionFunc[T],
) *BaseVersionedRepo[T] {
	return &BaseVersionedRepo[T]{
		db:              db,
		selectByID:      selectByID,
		scan:            scan,
		updateIfVersion: updateIfVersion,
	}
}

func (b *BaseVersionedRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	return b.scan(b.db.QueryRow(ctx, b.selectByID, id))
}

// UpdateWithRetry applies mutate under optimistic locking.
func (b *BaseVersionedRepo[T]) UpdateWithRetry(ctx context.Context, id string, mutate func(T) error) error {
	return WithRetry(ctx, DefaultMaxRetries, id, b.GetByID, b.updateIfVersion, mutate)
}
