package repokit

import (
	"context"
	"fmt"
	"time"

	perr "dashkit/internal/platform/errors"
)

// BeginHook runs first inside every transaction
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns inner with hooks run, in order, at the start of each
// Tx and ReadTx. Statements outside a transaction are untouched
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(Queryer) error) error {
	return h.TxRunner.Tx(ctx, h.wrap(ctx, fn))
}

func (h hooked) ReadTx(ctx context.Context, fn func(Queryer) error) error {
	return h.TxRunner.ReadTx(ctx, h.wrap(ctx, fn))
}

func (h hooked) wrap(ctx context.Context, fn func(Queryer) error) func(Queryer) error {
	return func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return perr.FromPostgresf(err, "begin hook")
			}
		}
		return fn(q)
	}
}

// StatementTimeout caps each statement of the transaction at d; d <= 0 is a no-op
func StatementTimeout(d time.Duration) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		ms := d.Milliseconds()
		if ms <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms))
		return err
	}
}
