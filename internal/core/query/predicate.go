package query

import (
	"fmt"
	"strings"
	"time"

	"dashkit/internal/core/normalize"
)

// Predicate is a node in a typed filter tree
// The set of node types is closed; storage backends switch over them
type Predicate interface{ isPredicate() }

// Equals matches records whose field equals Value
type Equals struct {
	Field string
	Value any
}

// Contains matches records whose string field contains Value, ignoring case
type Contains struct {
	Field string
	Value string
}

// CompareOp is a strict ordering comparison
type CompareOp uint8

const (
	// OpGT is field > value
	OpGT CompareOp = iota + 1
	// OpLT is field < value
	OpLT
)

func (o CompareOp) String() string {
	switch o {
	case OpGT:
		return ">"
	case OpLT:
		return "<"
	}
	return "?"
}

// Compare matches records whose non-null field orders strictly before or after Value
type Compare struct {
	Field string
	Op    CompareOp
	Value any
}

// IsNull matches records whose field is null, or not null when Negate is set
type IsNull struct {
	Field  string
	Negate bool
}

// And matches when every term matches; an empty And matches everything
type And struct{ Terms []Predicate }

// Or matches when any term matches; an empty Or matches nothing
type Or struct{ Terms []Predicate }

func (Equals) isPredicate()   {}
func (Contains) isPredicate() {}
func (Compare) isPredicate()  {}
func (IsNull) isPredicate()   {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}

// AndOf builds an And from the non-nil predicates
func AndOf(ps ...Predicate) And {
	out := And{Terms: make([]Predicate, 0, len(ps))}
	for _, p := range ps {
		if p != nil {
			out.Terms = append(out.Terms, p)
		}
	}
	return out
}

// OrOf builds an Or from the non-nil predicates
func OrOf(ps ...Predicate) Or {
	out := Or{Terms: make([]Predicate, 0, len(ps))}
	for _, p := range ps {
		if p != nil {
			out.Terms = append(out.Terms, p)
		}
	}
	return out
}

// Getter reads a field of a record; nil means SQL NULL
type Getter func(field string) any

// Match evaluates p against a record the way a SQL WHERE clause would:
// comparisons against NULL never match
func Match(p Predicate, get Getter) bool {
	switch n := p.(type) {
	case nil:
		return true
	case Equals:
		v := get(n.Field)
		if v == nil || n.Value == nil {
			return false
		}
		c, ok := CompareValues(v, n.Value)
		return ok && c == 0
	case Contains:
		s, ok := get(n.Field).(string)
		if !ok {
			return false
		}
		return normalize.ContainsFold(s, n.Value)
	case Compare:
		v := get(n.Field)
		if v == nil || n.Value == nil {
			return false
		}
		c, ok := CompareValues(v, n.Value)
		if !ok {
			return false
		}
		if n.Op == OpGT {
			return c > 0
		}
		return c < 0
	case IsNull:
		return (get(n.Field) == nil) != n.Negate
	case And:
		for _, t := range n.Terms {
			if !Match(t, get) {
				return false
			}
		}
		return true
	case Or:
		for _, t := range n.Terms {
			if Match(t, get) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("query: unknown predicate %T", p))
}

// CompareValues orders two non-null scalars of the same kind
// ok is false when the kinds differ or are not comparable
func CompareValues(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	}
	x, okA := asInt64(a)
	y, okB := asInt64(b)
	if !okA || !okB {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	}
	return 0, true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
