package query

import (
	"context"
	"errors"

	perr "dashkit/internal/platform/errors"
)

// ErrCursorNotFound is returned by Reader.Locate when the id does not resolve
// to a record matching the predicate
var ErrCursorNotFound = errors.New("query: cursor not found")

// Window bounds a scan
type Window struct {
	Skip int
	Take int
}

// Reader is the storage delegate a listing runs against
type Reader[T any] interface {
	// Scan returns up to w.Take records matching where, ordered by order, after skipping w.Skip
	Scan(ctx context.Context, where Predicate, order Order, w Window) ([]T, error)
	// Count returns the number of records matching where
	Count(ctx context.Context, where Predicate) (int64, error)
	// Locate returns the order key values of the record with id, or ErrCursorNotFound
	Locate(ctx context.Context, where Predicate, order Order, id string) (Anchor, error)
}

// Source opens consistent snapshots over a record set
// fn must not retain r after it returns; resources are released on every exit path
type Source[T any] interface {
	Snapshot(ctx context.Context, fn func(r Reader[T]) error) error
}

// Executor runs offset and cursor listings of one resource against a Source
type Executor[T any] struct {
	res  *Resource
	src  Source[T]
	idOf func(T) string
}

// NewExecutor wires a resource to its storage; it panics on nil dependencies
func NewExecutor[T any](res *Resource, src Source[T], idOf func(T) string) *Executor[T] {
	if res == nil {
		panic("query.NewExecutor: nil resource")
	}
	if src == nil {
		panic("query.NewExecutor: nil source")
	}
	if idOf == nil {
		panic("query.NewExecutor: nil id func")
	}
	return &Executor[T]{res: res, src: src, idOf: idOf}
}

// Resource returns the declaration this executor validates against
func (e *Executor[T]) Resource() *Resource { return e.res }

// ListOffset returns one offset page; data and total come from the same snapshot
func (e *Executor[T]) ListOffset(ctx context.Context, n Normalized) (OffsetPage[T], error) {
	plan, err := e.res.Prepare(n)
	if err != nil {
		return OffsetPage[T]{}, err
	}

	var (
		data  []T
		total int64
	)
	err = e.src.Snapshot(ctx, func(r Reader[T]) error {
		var err error
		data, err = r.Scan(ctx, plan.Where, plan.Order, Window{Skip: plan.Skip, Take: plan.Limit})
		if err != nil {
			return err
		}
		total, err = r.Count(ctx, plan.Where)
		return err
	})
	if err != nil {
		return OffsetPage[T]{}, perr.WithOp(err, e.res.name+".list_offset")
	}

	return OffsetPage[T]{
		Data:       nonNil(data),
		Pagination: Pagination{Total: total, Page: plan.Page, Limit: plan.Limit},
	}, nil
}

// ListCursor returns up to limit records strictly after the cursor record.
// One extra record is fetched to decide whether a next cursor exists
func (e *Executor[T]) ListCursor(ctx context.Context, n Normalized) (CursorPage[T], error) {
	plan, err := e.res.Prepare(n)
	if err != nil {
		return CursorPage[T]{}, err
	}

	var data []T
	err = e.src.Snapshot(ctx, func(r Reader[T]) error {
		where := plan.Where
		if plan.Cursor != "" {
			anchor, err := r.Locate(ctx, plan.Where, plan.Order, plan.Cursor)
			if errors.Is(err, ErrCursorNotFound) {
				return perr.WithField(perr.InvalidCursorf("cursor %q does not match any %s in this listing", plan.Cursor, e.res.name), KeyCursor)
			}
			if err != nil {
				return err
			}
			where = AndOf(plan.Where, After(plan.Order, anchor))
		}
		var err error
		data, err = r.Scan(ctx, where, plan.Order, Window{Take: plan.Limit + 1})
		return err
	})
	if err != nil {
		return CursorPage[T]{}, perr.WithOp(err, e.res.name+".list_cursor")
	}

	var next *string
	if len(data) > plan.Limit {
		data = data[:plan.Limit]
		id := e.idOf(data[len(data)-1])
		next = &id
	}
	return CursorPage[T]{Data: nonNil(data), NextCursor: next}, nil
}
