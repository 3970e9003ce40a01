// Package uow coordinates multi-repository writes: one transaction per
// unit, after-commit hooks for cache invalidation and change events,
// and a bounded retry for serialization conflicts.
package uow

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	postgres "github.com/aroya-air/seatwise/internal/repository/postgres"
)

// Booking confirms race on the same flight row under serializable
// isolation; three attempts absorb the usual 40001 storms.
const maxAttempts = 3

// AfterCommit runs once the transaction has committed. Hook failures
// are the hook's own problem; the write already happened.
type AfterCommit func(ctx context.Context)

type UoW struct {
	store *postgres.Store
}

func NewUoW(store *postgres.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn in a serializable transaction, then fires the hooks fn
// registered. On a retryable conflict the whole unit is re-run from
// scratch, hooks included.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts is Do with explicit transaction options.
func (u *UoW) DoWithOpts(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var hooks []AfterCommit

		err = u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgres.DB) error {
			return fn(ctx, tx, func(h AfterCommit) {
				hooks = append(hooks, h)
			})
		})
		if err == nil {
			for _, h := range hooks {
				h(ctx)
			}
			return nil
		}

		if !postgres.IsRetryable(err) || attempt == maxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}

	return err
}
