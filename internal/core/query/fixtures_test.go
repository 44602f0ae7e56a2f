package query_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"dashkit/internal/core/query"
	"dashkit/internal/core/query/memsource"
)

type widget struct {
	ID          string
	Name        string
	Description *string
	Status      string
	Rank        int64
	CreatedAt   time.Time
}

func strPtr(s string) *string { return &s }

func widgetField(w widget, field string) any {
	switch field {
	case "id":
		return w.ID
	case "name":
		return w.Name
	case "description":
		if w.Description == nil {
			return nil
		}
		return *w.Description
	case "status":
		return w.Status
	case "rank":
		return w.Rank
	case "createdAt":
		return w.CreatedAt
	}
	return nil
}

func widgetID(w widget) string { return w.ID }

var widgets = query.MustResource("widget", "id",
	query.Order{{Field: "createdAt", Direction: query.Desc}},
	query.Field{Name: "id", Kind: query.KindString, Sortable: true},
	query.Field{Name: "name", Kind: query.KindString, Sortable: true, Searchable: true, Filterable: true},
	query.Field{Name: "description", Kind: query.KindString, Sortable: true, Searchable: true, Filterable: true},
	query.Field{Name: "status", Kind: query.KindString, Sortable: true, Filterable: true},
	query.Field{Name: "rank", Kind: query.KindInt, Sortable: true, Filterable: true},
	query.Field{Name: "createdAt", Kind: query.KindTime, Sortable: true},
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// seedWidgets builds n widgets with ties on rank and status and some null descriptions
func seedWidgets(n int) []widget {
	out := make([]widget, 0, n)
	for i := 0; i < n; i++ {
		w := widget{
			ID:        fmt.Sprintf("w%03d", i),
			Name:      fmt.Sprintf("Widget %d", i),
			Status:    []string{"active", "archived"}[i%2],
			Rank:      int64(i % 4),
			CreatedAt: epoch.Add(time.Duration(i%5) * time.Hour),
		}
		if i%3 != 0 {
			w.Description = strPtr(fmt.Sprintf("description number %d", i))
		}
		out = append(out, w)
	}
	return out
}

func newSource(items ...widget) *memsource.Source[widget] {
	return memsource.New(widgetField, widgetID, items...)
}

// countingSource records how often storage is touched
type countingSource struct {
	inner     query.Source[widget]
	snapshots atomic.Int64
	calls     atomic.Int64
	failWith  error
}

func (c *countingSource) Snapshot(ctx context.Context, fn func(r query.Reader[widget]) error) error {
	c.snapshots.Add(1)
	return c.inner.Snapshot(ctx, func(r query.Reader[widget]) error {
		return fn(countingReader{inner: r, parent: c})
	})
}

type countingReader struct {
	inner  query.Reader[widget]
	parent *countingSource
}

func (r countingReader) Scan(ctx context.Context, where query.Predicate, order query.Order, w query.Window) ([]widget, error) {
	r.parent.calls.Add(1)
	if r.parent.failWith != nil {
		return nil, r.parent.failWith
	}
	return r.inner.Scan(ctx, where, order, w)
}

func (r countingReader) Count(ctx context.Context, where query.Predicate) (int64, error) {
	r.parent.calls.Add(1)
	if r.parent.failWith != nil {
		return 0, r.parent.failWith
	}
	return r.inner.Count(ctx, where)
}

func (r countingReader) Locate(ctx context.Context, where query.Predicate, order query.Order, id string) (query.Anchor, error) {
	r.parent.calls.Add(1)
	if r.parent.failWith != nil {
		return nil, r.parent.failWith
	}
	return r.inner.Locate(ctx, where, order, id)
}

func normalized(kv ...string) query.Normalized {
	raw := query.RawQuery{Filters: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		switch kv[i] {
		case query.KeySearchTerm:
			raw.SearchTerm = kv[i+1]
		case query.KeySearchFields:
			raw.SearchFields = kv[i+1]
		case query.KeySortField:
			raw.SortField = kv[i+1]
		case query.KeySortDirection:
			raw.SortDirection = kv[i+1]
		case query.KeyPage:
			raw.Page = kv[i+1]
		case query.KeyLimit:
			raw.Limit = kv[i+1]
		case query.KeyCursor:
			raw.Cursor = kv[i+1]
		default:
			raw.Filters[kv[i]] = kv[i+1]
		}
	}
	return query.Normalize(raw)
}

func ids(ws []widget) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}
