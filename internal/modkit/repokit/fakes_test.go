package repokit

import (
	"context"

	"dashkit/internal/platform/store"
)

type call struct {
	sql  string
	args []any
}

// fakeQ records every statement it sees
type fakeQ struct {
	calls []call
	err   error
}

func (f *fakeQ) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.calls = append(f.calls, call{sql, args})
	return nil, f.err
}

func (f *fakeQ) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	f.calls = append(f.calls, call{sql, args})
	return nil, f.err
}

func (f *fakeQ) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	f.calls = append(f.calls, call{sql, args})
	return nil
}

// fakeTx hands its fakeQ to fn and counts how each mode was entered
type fakeTx struct {
	fakeQ
	q     *fakeQ
	err   error
	tx    int
	reads int
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.tx++
	if err := fn(f.q); err != nil {
		return err
	}
	return f.err
}

func (f *fakeTx) ReadTx(ctx context.Context, fn func(q Queryer) error) error {
	f.reads++
	if err := fn(f.q); err != nil {
		return err
	}
	return f.err
}
