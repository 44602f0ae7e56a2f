package query

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	perr "dashkit/internal/platform/errors"

	"github.com/google/uuid"
)

// Kind is the scalar type of a resource field
type Kind uint8

// Field kinds
const (
	KindString Kind = iota + 1
	KindInt
	KindBool
	KindTime
	KindUUID
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindUUID:
		return "uuid"
	}
	return "unknown"
}

// Parse converts raw query text into a typed value of this kind
func (k Kind) Parse(raw string) (any, error) {
	switch k {
	case KindString:
		return raw, nil
	case KindInt:
		return strconv.ParseInt(raw, 10, 64)
	case KindBool:
		return strconv.ParseBool(raw)
	case KindTime:
		return time.Parse(time.RFC3339Nano, raw)
	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	}
	return nil, fmt.Errorf("unknown kind %d", k)
}

// Field declares one listable field of a resource
type Field struct {
	Name       string
	Kind       Kind
	Sortable   bool
	Searchable bool
	Filterable bool
}

// Resource declares which fields a listable type exposes and how it orders by default
type Resource struct {
	name     string
	id       Field
	fields   map[string]Field
	names    []string
	fallback Order
}

// NewResource validates a resource declaration.
// idField must be a declared sortable field; fallback may be empty, in which case
// records are ordered by id alone
func NewResource(name, idField string, fallback Order, fields ...Field) (*Resource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, perr.Configurationf("resource name is required")
	}
	r := &Resource{name: name, fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if f.Name == "" {
			return nil, perr.Configurationf("resource %s: field with empty name", name)
		}
		if _, dup := r.fields[f.Name]; dup {
			return nil, perr.Configurationf("resource %s: field %s declared twice", name, f.Name)
		}
		if f.Kind < KindString || f.Kind > KindUUID {
			return nil, perr.Configurationf("resource %s: field %s has no kind", name, f.Name)
		}
		if f.Searchable && f.Kind != KindString {
			return nil, perr.Configurationf("resource %s: searchable field %s must be a string, got %s", name, f.Name, f.Kind)
		}
		r.fields[f.Name] = f
		r.names = append(r.names, f.Name)
	}
	if len(r.fields) == 0 {
		return nil, perr.Configurationf("resource %s declares no fields", name)
	}

	id, ok := r.fields[idField]
	if !ok {
		return nil, perr.Configurationf("resource %s: id field %q is not declared", name, idField)
	}
	if !id.Sortable {
		return nil, perr.Configurationf("resource %s: id field %q must be sortable", name, idField)
	}
	r.id = id

	for _, t := range fallback {
		f, ok := r.fields[t.Field]
		if !ok || !f.Sortable {
			return nil, perr.Configurationf("resource %s: fallback order uses unsortable field %q", name, t.Field)
		}
		if t.Direction != Asc && t.Direction != Desc {
			return nil, perr.Configurationf("resource %s: fallback order on %q has direction %q", name, t.Field, t.Direction)
		}
	}
	r.fallback = append(Order(nil), fallback...)
	return r, nil
}

// MustResource is NewResource that panics, for package level declarations
func MustResource(name, idField string, fallback Order, fields ...Field) *Resource {
	r, err := NewResource(name, idField, fallback, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the resource name
func (r *Resource) Name() string { return r.name }

// IDField returns the name of the unique id field
func (r *Resource) IDField() string { return r.id.Name }

// Fallback returns the default order
func (r *Resource) Fallback() Order { return append(Order(nil), r.fallback...) }

// Field looks up a declared field
func (r *Resource) Field(name string) (Field, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// Searchable lists the default search fields in declaration order
func (r *Resource) Searchable() []string {
	var out []string
	for _, n := range r.names {
		if r.fields[n].Searchable {
			out = append(out, n)
		}
	}
	return out
}

// Plan is a validated list request ready for a storage backend
type Plan struct {
	Where  Predicate
	Order  Order
	Page   int
	Limit  int
	Skip   int
	Cursor string
}

// Prepare validates n against the declaration and builds the predicate and order.
// Unknown or disallowed field names and unparsable values are validation errors
// carrying the offending field
func (r *Resource) Prepare(n Normalized) (Plan, error) {
	sort, err := r.sortSpec(n.SortField, n.SortDirection)
	if err != nil {
		return Plan{}, err
	}

	filters, err := r.filters(n.Filters)
	if err != nil {
		return Plan{}, err
	}

	if n.Search != "" && len(r.Searchable()) == 0 {
		return Plan{}, perr.WithField(perr.Validationf("%s has no searchable fields", r.name), KeySearchTerm)
	}
	for _, f := range n.SearchFields {
		def, ok := r.fields[f]
		if !ok || !def.Searchable {
			return Plan{}, perr.WithField(perr.Validationf("field %q is not searchable on %s", f, r.name), KeySearchFields)
		}
	}

	var cursor string
	if n.Cursor != "" {
		v, err := r.id.Kind.Parse(n.Cursor)
		if err != nil {
			return Plan{}, perr.WithField(perr.InvalidCursorf("cursor %q is not a valid %s id", n.Cursor, r.name), KeyCursor)
		}
		cursor = fmt.Sprint(v)
	}

	where := BuildWhere(nil, filters, SearchSpec{Term: n.Search, Fields: n.SearchFields}, r.Searchable())
	order := WithTieBreak(ResolveOrder(sort, r.fallback), r.id.Name)

	limit := n.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	page := max(n.Page, 1)
	return Plan{
		Where:  where,
		Order:  order,
		Page:   page,
		Limit:  limit,
		Skip:   Skip(page, limit),
		Cursor: cursor,
	}, nil
}

func (r *Resource) sortSpec(field, direction string) (*SortSpec, error) {
	dir, ok := ParseDirection(direction)
	if !ok {
		return nil, perr.WithField(perr.Validationf("sort direction %q must be asc or desc", direction), KeySortDirection)
	}
	if field == "" {
		return nil, nil
	}
	f, ok := r.fields[field]
	if !ok || !f.Sortable {
		return nil, perr.WithField(perr.Validationf("cannot sort %s by %q", r.name, field), KeySortField)
	}
	return &SortSpec{Field: field, Direction: dir}, nil
}

func (r *Resource) filters(raw map[string]string) ([]FieldFilter, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]FieldFilter, 0, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		f, ok := r.fields[name]
		if !ok || !f.Filterable {
			return nil, perr.WithField(perr.Validationf("cannot filter %s by %q", r.name, name), name)
		}
		if raw[name] == "" {
			continue
		}
		v, err := f.Kind.Parse(raw[name])
		if err != nil {
			return nil, perr.WithField(perr.Validationf("filter %s: %q is not a valid %s", name, raw[name], f.Kind), name)
		}
		out = append(out, FieldFilter{Field: name, Kind: f.Kind, Value: v})
	}
	return out, nil
}
