// Package memsource is an in-memory query.Source over a slice of records.
// It backs tests and runs the API without a database
package memsource

import (
	"context"
	"slices"
	"sync"

	"dashkit/internal/core/query"
	perr "dashkit/internal/platform/errors"
)

// Accessor exposes record fields to the matcher; nil is NULL
type Accessor[T any] func(rec T, field string) any

// Source holds records behind a RWMutex; snapshots copy the slice under a read lock
type Source[T any] struct {
	mu    sync.RWMutex
	items []T
	get   Accessor[T]
	id    func(T) string
}

// New builds a Source seeded with items
func New[T any](get Accessor[T], id func(T) string, items ...T) *Source[T] {
	if get == nil || id == nil {
		panic("memsource.New: nil accessor")
	}
	return &Source[T]{items: slices.Clone(items), get: get, id: id}
}

// Snapshot runs fn against a point in time copy of the records
func (s *Source[T]) Snapshot(ctx context.Context, fn func(r query.Reader[T]) error) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	snap := slices.Clone(s.items)
	s.mu.RUnlock()
	return fn(&reader[T]{items: snap, get: s.get, id: s.id})
}

// Put inserts rec or replaces the record with the same id
func (s *Source[T]) Put(rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(rec)
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = rec
			return
		}
	}
	s.items = append(s.items, rec)
}

// Get returns the record with id
func (s *Source[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if s.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes and returns the record with id
func (s *Source[T]) Delete(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if s.id(it) == id {
			s.items = slices.Delete(s.items, i, i+1)
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Len reports the number of stored records
func (s *Source[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

type reader[T any] struct {
	items []T
	get   Accessor[T]
	id    func(T) string
}

func (r *reader[T]) Scan(ctx context.Context, where query.Predicate, order query.Order, w query.Window) ([]T, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	matched := r.filter(where)
	slices.SortStableFunc(matched, func(a, b T) int { return r.compare(order, a, b) })

	if w.Skip >= len(matched) {
		return []T{}, nil
	}
	matched = matched[w.Skip:]
	if w.Take >= 0 && w.Take < len(matched) {
		matched = matched[:w.Take]
	}
	return matched, nil
}

func (r *reader[T]) Count(ctx context.Context, where query.Predicate) (int64, error) {
	if err := live(ctx); err != nil {
		return 0, err
	}
	return int64(len(r.filter(where))), nil
}

func (r *reader[T]) Locate(ctx context.Context, where query.Predicate, order query.Order, id string) (query.Anchor, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	for _, it := range r.items {
		if r.id(it) != id || !query.Match(where, r.getter(it)) {
			continue
		}
		a := make(query.Anchor, len(order))
		for _, t := range order {
			a[t.Field] = r.get(it, t.Field)
		}
		return a, nil
	}
	return nil, query.ErrCursorNotFound
}

func (r *reader[T]) filter(where query.Predicate) []T {
	out := make([]T, 0, len(r.items))
	for _, it := range r.items {
		if query.Match(where, r.getter(it)) {
			out = append(out, it)
		}
	}
	return out
}

func (r *reader[T]) getter(rec T) query.Getter {
	return func(field string) any { return r.get(rec, field) }
}

// compare orders a and b under o with NULL as the greatest value
func (r *reader[T]) compare(o query.Order, a, b T) int {
	for _, t := range o {
		va, vb := r.get(a, t.Field), r.get(b, t.Field)
		var c int
		switch {
		case va == nil && vb == nil:
			c = 0
		case va == nil:
			c = 1
		case vb == nil:
			c = -1
		default:
			c, _ = query.CompareValues(va, vb)
		}
		if t.Direction == query.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// live reports a canceled or expired ctx as unavailable, matching the postgres path
func live(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "memsource")
	}
	return nil
}
