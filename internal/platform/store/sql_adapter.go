package store

import (
	"context"
	"errors"
	"time"

	perr "dashkit/internal/platform/errors"
	"dashkit/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// conn is what a pool and an open pgx.Tx have in common
type conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier runs statements on c and traces each one
type querier struct {
	c  conn
	db *pg.PG
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.c.Exec(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	return ct, err
}

func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.c.Query(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgxRows{rs}, nil
}

// QueryRow is traced once Scan returns, so the event carries the scan error
func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{row: q.c.QueryRow(ctx, sql, args...), done: func(err error) {
		q.trace(ctx, sql, args, start, err)
	}}
}

func (q querier) trace(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if q.db == nil || q.db.Tracer == nil {
		return
	}
	took := time.Since(start)
	q.db.Tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: took.Microseconds(),
		Err:       err,
		Slow:      q.db.SlowMs >= 0 && took >= time.Duration(q.db.SlowMs)*time.Millisecond,
	})
}

// pgAdapter is the TxRunner over a pg pool
type pgAdapter struct{ querier }

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{querier{c: p.Pool, db: p}}
}

// NewSQL wraps an open pg handle as a TxRunner
func NewSQL(p *pg.PG) TxRunner { return newPGAdapter(p) }

// snapshotTx backs ReadTx
var snapshotTx = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return a.within(ctx, pgx.TxOptions{}, fn)
}

func (a *pgAdapter) ReadTx(ctx context.Context, fn func(q RowQuerier) error) error {
	return a.within(ctx, snapshotTx, fn)
}

// within commits when fn succeeds and rolls back on error or panic.
// Rollback ignores ctx cancellation so the server always hears it.
// Begin and commit failures come back classified; fn errors pass through
func (a *pgAdapter) within(ctx context.Context, opts pgx.TxOptions, fn func(q RowQuerier) error) (err error) {
	var tx pgx.Tx
	if opts == (pgx.TxOptions{}) {
		tx, err = a.db.Pool.Begin(ctx)
	} else {
		tx, err = a.db.Pool.BeginTx(ctx, opts)
	}
	if err != nil {
		return perr.FromPostgresf(err, "begin")
	}
	rollback := func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }
	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()
	if err := fn(querier{c: tx, db: a.db}); err != nil {
		rollback()
		return err
	}
	return perr.FromPostgresf(tx.Commit(ctx), "commit")
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	a.db.Close()
	return nil
}

type tracedRow struct {
	row  pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.row.Scan(dst...)
	r.done(err)
	return err
}

type pgxRows struct{ pgx.Rows }

func (r pgxRows) Columns() []string {
	fds := r.FieldDescriptions()
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}
