// Package repokit holds what sql repositories share: the store seams,
// repo binding, transaction hooks and the generic listing source
package repokit

import "dashkit/internal/platform/store"

type (
	// Queryer runs single statements
	Queryer = store.RowQuerier
	// TxRunner adds transactions to Queryer
	TxRunner = store.TxRunner
	// Row is one result row
	Row = store.Row
	// Rows is a result set
	Rows = store.Rows
	// CommandTag reports what a write did
	CommandTag = store.CommandTag
)

// Binder produces a repo bound to q, which may be the pool or an open transaction
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a function to Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer returns q, panicking when it is nil
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}
