package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "dashkit/internal/platform/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithBeginHooks_RunsInOrderBeforeFn(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"tx", "read"} {
		t.Run(mode, func(t *testing.T) {
			q := &fakeQ{}
			inner := &fakeTx{q: q}
			var seq []string
			hook := func(name string) BeginHook {
				return func(_ context.Context, got Queryer) error {
					assert.Same(t, q, got)
					seq = append(seq, name)
					return nil
				}
			}
			r := WithBeginHooks(inner, hook("h1"), hook("h2"))
			fn := func(got Queryer) error {
				assert.Same(t, q, got)
				seq = append(seq, "fn")
				return nil
			}

			var err error
			if mode == "tx" {
				err = r.Tx(context.Background(), fn)
			} else {
				err = r.ReadTx(context.Background(), fn)
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"h1", "h2", "fn"}, seq)
			assert.Equal(t, 1, inner.tx+inner.reads)
		})
	}
}

func TestWithBeginHooks_ErrorShortCircuits(t *testing.T) {
	t.Parallel()
	inner := &fakeTx{q: &fakeQ{}}
	boom := errors.New("boom")

	r := WithBeginHooks(inner,
		func(context.Context, Queryer) error { return boom },
		func(context.Context, Queryer) error { t.Fatal("second hook ran"); return nil },
	)
	ran := false
	err := r.ReadTx(context.Background(), func(Queryer) error { ran = true; return nil })
	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)
}

func TestWithBeginHooks_HookFailureIsClassified(t *testing.T) {
	t.Parallel()
	inner := &fakeTx{q: &fakeQ{}}
	r := WithBeginHooks(inner, func(context.Context, Queryer) error {
		return &pgconn.PgError{Code: "57P01", Message: "terminating connection"}
	})

	err := r.ReadTx(context.Background(), func(Queryer) error { return nil })
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
	assert.ErrorContains(t, err, "begin hook")
}

func TestWithBeginHooks_Delegates(t *testing.T) {
	t.Parallel()
	inner := &fakeTx{q: &fakeQ{}}
	r := WithBeginHooks(inner)
	ctx := context.Background()

	_, _ = r.Exec(ctx, "UPDATE x SET a=$1", 7)
	_, _ = r.Query(ctx, "SELECT a FROM x WHERE a=$1", 9)
	_ = r.QueryRow(ctx, "SELECT a FROM x WHERE id=$1", "abc")

	assert.Equal(t, []call{
		{"UPDATE x SET a=$1", []any{7}},
		{"SELECT a FROM x WHERE a=$1", []any{9}},
		{"SELECT a FROM x WHERE id=$1", []any{"abc"}},
	}, inner.calls)
}

func TestStatementTimeout(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}
	require.NoError(t, StatementTimeout(1500*time.Millisecond)(context.Background(), q))
	require.NoError(t, StatementTimeout(0)(context.Background(), q))
	require.Len(t, q.calls, 1)
	assert.Equal(t, "SET LOCAL statement_timeout = 1500", q.calls[0].sql)
}

func TestBindFunc(t *testing.T) {
	q := &fakeQ{}
	b := BindFunc[Queryer](func(got Queryer) Queryer { return RequireQueryer(got) })
	assert.Same(t, q, b.Bind(q))
	assert.Panics(t, func() { b.Bind(nil) })
}
