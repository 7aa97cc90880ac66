package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
)

// EntityWithVersion is a row guarded by a row_version column. comparable lets
// the loop detect a missing row as the zero value (nil for pointers).
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

// RetryBackoff is the pause before the second attempt; it grows linearly.
var RetryBackoff = 10 * time.Millisecond

// WithRetry reads the row, applies mutate and writes it back only if
// row_version is unchanged, re-reading up to maxAttempts times. mutate sees a
// fresh copy on every attempt and must be safe to re-run.
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxAttempts int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, time.Duration(attempt-1)*RetryBackoff); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		written, err := tryUpdate(ctx, id, getByID, updateIfVersion, mutate)
		if err != nil || written {
			return err
		}
		utils.Logger.WithFields(logrus.Fields{
			"entity_id": id,
			"attempt":   attempt,
		}).Debug("row_version moved under update, retrying")
	}
	return fmt.Errorf("%d attempts on %q: %w", maxAttempts, id, utils.ErrRowVersionConflict)
}

// tryUpdate runs one read-mutate-write round. written is false only when
// another writer bumped row_version in between.
func tryUpdate[T EntityWithVersion](
	ctx context.Context,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) (written bool, err error) {
	current, err := getByID(ctx, id)
	if err != nil {
		return false, err
	}
	var zero T
	if current == zero {
		return false, pgx.ErrNoRows
	}

	read := current.GetRowVersion()
	if err := mutate(current); err != nil {
		return false, err
	}

	tag, err := updateIfVersion(ctx, current, read)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}
	current.SetRowVersion(read + 1)
	return true, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
