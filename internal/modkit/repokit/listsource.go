package repokit

import (
	"context"
	stderrs "errors"
	"fmt"
	"strconv"
	"strings"

	"dashkit/internal/core/query"
	perr "dashkit/internal/platform/errors"
	"dashkit/internal/platform/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Table describes how a resource maps onto one SQL relation
type Table[T any] struct {
	// Name is the relation used in FROM
	Name string
	// Columns maps resource field names to column expressions
	Columns map[string]string
	// ID is the resource id field; it must be present in Columns
	ID string
	// Select is the projection handed to Scan
	Select string
	// Scan maps one row of Select into T
	Scan func(Row) (T, error)
}

// ListSource serves query listings from postgres.
// Every Snapshot runs inside a single read only repeatable read transaction
type ListSource[T any] struct {
	tx  TxRunner
	tbl Table[T]
}

// NewListSource validates tbl and binds it to tx; misconfiguration panics at wiring time
func NewListSource[T any](tx TxRunner, tbl Table[T]) *ListSource[T] {
	if tx == nil {
		panic("repokit: nil TxRunner")
	}
	switch {
	case tbl.Name == "":
		panic("repokit: table name required")
	case tbl.Select == "":
		panic("repokit: select list required")
	case tbl.Scan == nil:
		panic("repokit: scan func required")
	case tbl.Columns[tbl.ID] == "":
		panic(fmt.Sprintf("repokit: id field %q has no column", tbl.ID))
	}
	return &ListSource[T]{tx: tx, tbl: tbl}
}

// Snapshot implements query.Source. A snapshot that loses a serialization
// race is replayed once before the failure is returned
func (s *ListSource[T]) Snapshot(ctx context.Context, fn func(r query.Reader[T]) error) error {
	run := func() error {
		return s.tx.ReadTx(ctx, func(q Queryer) error {
			return fn(sqlReader[T]{q: q, tbl: &s.tbl})
		})
	}
	err := run()
	if perr.IsRetryable(err) {
		err = run()
	}
	return err
}

type sqlReader[T any] struct {
	q   Queryer
	tbl *Table[T]
}

func (r sqlReader[T]) Scan(ctx context.Context, where query.Predicate, order query.Order, w query.Window) ([]T, error) {
	b := sqlBuilder{cols: r.tbl.Columns}
	cond, err := b.where(where)
	if err != nil {
		return nil, err
	}
	by, err := b.orderBy(order)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s", r.tbl.Select, r.tbl.Name, cond)
	if by != "" {
		sb.WriteString(" ORDER BY " + by)
	}
	if w.Take >= 0 {
		sb.WriteString(" LIMIT " + b.bind(w.Take))
	}
	if w.Skip > 0 {
		sb.WriteString(" OFFSET " + b.bind(w.Skip))
	}

	out, err := store.Many(ctx, r.q, r.tbl.Scan, sb.String(), b.args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "scan %s", r.tbl.Name)
	}
	return out, nil
}

func (r sqlReader[T]) Count(ctx context.Context, where query.Predicate) (int64, error) {
	b := sqlBuilder{cols: r.tbl.Columns}
	cond, err := b.where(where)
	if err != nil {
		return 0, err
	}
	sql := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", r.tbl.Name, cond)
	n, err := store.Scalar[int64](ctx, r.q, sql, b.args...)
	if err != nil {
		return 0, perr.FromPostgresf(err, "count %s", r.tbl.Name)
	}
	return n, nil
}

func (r sqlReader[T]) Locate(ctx context.Context, where query.Predicate, order query.Order, id string) (query.Anchor, error) {
	b := sqlBuilder{cols: r.tbl.Columns}
	cond, err := b.where(query.AndOf(query.Equals{Field: r.tbl.ID, Value: id}, where))
	if err != nil {
		return nil, err
	}
	exprs := make([]string, len(order))
	for i, t := range order {
		col, err := b.column(t.Field)
		if err != nil {
			return nil, err
		}
		exprs[i] = col
	}
	if len(exprs) == 0 {
		exprs = []string{"1"}
	}

	vals := make([]any, len(exprs))
	dst := make([]any, len(exprs))
	for i := range vals {
		dst[i] = &vals[i]
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(exprs, ", "), r.tbl.Name, cond)
	if err := r.q.QueryRow(ctx, sql, b.args...).Scan(dst...); err != nil {
		if stderrs.Is(err, pgx.ErrNoRows) {
			return nil, query.ErrCursorNotFound
		}
		return nil, perr.FromPostgresf(err, "locate %s", r.tbl.Name)
	}

	anchor := make(query.Anchor, len(order))
	for i, t := range order {
		anchor[t.Field] = anchorValue(vals[i])
	}
	return anchor, nil
}

// anchorValue turns driver native values into ones query.CompareValues and pgx both accept
func anchorValue(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String()
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	}
	return v
}

// sqlBuilder renders predicates to postgres with positional args
type sqlBuilder struct {
	cols map[string]string
	args []any
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) column(field string) (string, error) {
	col, ok := b.cols[field]
	if !ok {
		return "", perr.Configurationf("no column mapped for field %q", field)
	}
	return col, nil
}

func (b *sqlBuilder) where(p query.Predicate) (string, error) {
	if p == nil {
		return "TRUE", nil
	}
	switch n := p.(type) {
	case query.Equals:
		col, err := b.column(n.Field)
		if err != nil {
			return "", err
		}
		if n.Value == nil {
			return col + " IS NULL", nil
		}
		return col + " = " + b.bind(n.Value), nil

	case query.Contains:
		col, err := b.column(n.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`%s ILIKE '%%' || %s || '%%' ESCAPE '\'`, col, b.bind(EscapeLike(n.Value))), nil

	case query.Compare:
		col, err := b.column(n.Field)
		if err != nil {
			return "", err
		}
		return col + " " + n.Op.String() + " " + b.bind(n.Value), nil

	case query.IsNull:
		col, err := b.column(n.Field)
		if err != nil {
			return "", err
		}
		if n.Negate {
			return col + " IS NOT NULL", nil
		}
		return col + " IS NULL", nil

	case query.And:
		return b.join(n.Terms, " AND ", "TRUE")

	case query.Or:
		return b.join(n.Terms, " OR ", "FALSE")
	}
	return "", perr.Configurationf("unsupported predicate %T", p)
}

func (b *sqlBuilder) join(terms []query.Predicate, sep, empty string) (string, error) {
	if len(terms) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		s, err := b.where(t)
		if err != nil {
			return "", err
		}
		if s != empty {
			parts = append(parts, s)
		}
	}
	switch len(parts) {
	case 0:
		return empty, nil
	case 1:
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *sqlBuilder) orderBy(o query.Order) (string, error) {
	parts := make([]string, 0, len(o))
	for _, t := range o {
		col, err := b.column(t.Field)
		if err != nil {
			return "", err
		}
		if t.Direction == query.Desc {
			parts = append(parts, col+" DESC NULLS FIRST")
		} else {
			parts = append(parts, col+" ASC NULLS LAST")
		}
	}
	return strings.Join(parts, ", "), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE wildcards so s matches literally
func EscapeLike(s string) string { return likeEscaper.Replace(s) }
