package query

// Anchor holds the order key values of the record a cursor points at
type Anchor map[string]any

// After returns the predicate selecting records strictly after anchor under o.
// Nulls sort last ascending and first descending, i.e. NULL is the greatest value,
// which is also what postgres does by default
func After(o Order, anchor Anchor) Predicate {
	out := Or{}
	var eq []Predicate
	for _, t := range o {
		v := anchor[t.Field]
		if beyond := beyondOn(t, v); beyond != nil {
			terms := make([]Predicate, 0, len(eq)+1)
			terms = append(terms, eq...)
			terms = append(terms, beyond)
			out.Terms = append(out.Terms, And{Terms: terms})
		}
		if v == nil {
			eq = append(eq, IsNull{Field: t.Field})
		} else {
			eq = append(eq, Equals{Field: t.Field, Value: v})
		}
	}
	return out
}

// beyondOn selects values strictly after v on a single term, nil when none exist
func beyondOn(t OrderTerm, v any) Predicate {
	if t.Direction == Desc {
		if v == nil {
			return IsNull{Field: t.Field, Negate: true}
		}
		return Compare{Field: t.Field, Op: OpLT, Value: v}
	}
	if v == nil {
		return nil
	}
	return Or{Terms: []Predicate{
		Compare{Field: t.Field, Op: OpGT, Value: v},
		IsNull{Field: t.Field},
	}}
}
