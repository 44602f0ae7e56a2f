package query

import "strings"

// Direction is a sort direction
type Direction string

// Supported directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc or desc in any case; empty means asc
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return "", false
}

// SortSpec is a validated single-field sort request
type SortSpec struct {
	Field     string
	Direction Direction
}

// OrderTerm is one key of an ordering
type OrderTerm struct {
	Field     string
	Direction Direction
}

// Order is a lexicographic ordering over fields
type Order []OrderTerm

// Has reports whether field already appears in the order
func (o Order) Has(field string) bool {
	for _, t := range o {
		if t.Field == field {
			return true
		}
	}
	return false
}

// ResolveOrder returns fallback when sort is nil, otherwise the single
// requested term; an empty direction means ascending
func ResolveOrder(sort *SortSpec, fallback Order) Order {
	if sort == nil {
		return fallback
	}
	dir := sort.Direction
	if dir == "" {
		dir = Asc
	}
	return Order{{Field: sort.Field, Direction: dir}}
}

// WithTieBreak appends idField ascending unless the order already has it,
// making the order total over unique ids
func WithTieBreak(o Order, idField string) Order {
	if o.Has(idField) {
		return o
	}
	out := make(Order, 0, len(o)+1)
	out = append(out, o...)
	return append(out, OrderTerm{Field: idField, Direction: Asc})
}
