package query

// FieldFilter is a typed filter value for one field
type FieldFilter struct {
	Field string
	Kind  Kind
	Value any
}

// SearchSpec is a free text term matched against a set of fields
type SearchSpec struct {
	Term   string
	Fields []string
}

// BuildWhere combines an optional base predicate, explicit filters and a search term.
// String filters become case-insensitive Contains, other kinds become Equals.
// A non-empty term adds Or(Contains...) over search.Fields, or searchable when
// that is empty; with no fields at all the Or is empty and matches nothing.
// Terms already under a base And are kept and the new ones appended
func BuildWhere(base Predicate, filters []FieldFilter, search SearchSpec, searchable []string) Predicate {
	var terms []Predicate
	switch b := base.(type) {
	case nil:
	case And:
		terms = append(terms, b.Terms...)
	default:
		terms = append(terms, b)
	}

	for _, f := range filters {
		if s, ok := f.Value.(string); ok && f.Kind == KindString {
			terms = append(terms, Contains{Field: f.Field, Value: s})
			continue
		}
		terms = append(terms, Equals{Field: f.Field, Value: f.Value})
	}

	if search.Term != "" {
		fields := search.Fields
		if len(fields) == 0 {
			fields = searchable
		}
		or := Or{Terms: make([]Predicate, 0, len(fields))}
		for _, name := range fields {
			or.Terms = append(or.Terms, Contains{Field: name, Value: search.Term})
		}
		terms = append(terms, or)
	}

	return And{Terms: terms}
}
