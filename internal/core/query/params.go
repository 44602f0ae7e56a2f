// Package query maps list requests onto bounded, deterministic storage queries.
// It owns the typed predicate tree, order resolution and the two pagination
// protocols (offset and cursor) shared by every listable resource
package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"dashkit/internal/core/normalize"
)

// Limits applied to every list request
const (
	DefaultLimit = 20
	MaxLimit     = 100

	// maxPage keeps (page-1)*limit well inside int range
	maxPage = math.MaxInt32
)

// Reserved query keys; everything else is treated as a field filter
const (
	KeySearchTerm    = "searchTerm"
	KeySearchFields  = "searchFields"
	KeyPage          = "page"
	KeyLimit         = "limit"
	KeySortField     = "sortField"
	KeySortDirection = "sortDirection"
	KeyCursor        = "cursor"
)

var reserved = map[string]struct{}{
	KeySearchTerm:    {},
	KeySearchFields:  {},
	KeyPage:          {},
	KeyLimit:         {},
	KeySortField:     {},
	KeySortDirection: {},
	KeyCursor:        {},
}

// RawQuery is the untyped list request as it arrives from a transport
type RawQuery struct {
	SearchTerm    string
	SearchFields  string
	SortField     string
	SortDirection string
	Page          string
	Limit         string
	Cursor        string
	Filters       map[string]string
}

// RawQueryFromValues builds a RawQuery from url query values, first value wins
func RawQueryFromValues(v url.Values) RawQuery {
	rq := RawQuery{
		SearchTerm:    v.Get(KeySearchTerm),
		SearchFields:  v.Get(KeySearchFields),
		SortField:     v.Get(KeySortField),
		SortDirection: v.Get(KeySortDirection),
		Page:          v.Get(KeyPage),
		Limit:         v.Get(KeyLimit),
		Cursor:        v.Get(KeyCursor),
	}
	for k, vals := range v {
		if _, skip := reserved[k]; skip || len(vals) == 0 {
			continue
		}
		if rq.Filters == nil {
			rq.Filters = make(map[string]string)
		}
		rq.Filters[k] = vals[0]
	}
	return rq
}

// Normalized is a clamped list request; field names are not validated yet
type Normalized struct {
	Search        string
	SearchFields  []string
	SortField     string
	SortDirection string
	Page          int
	Limit         int
	Skip          int
	Cursor        string
	Filters       map[string]string
}

// Normalize clamps limit and page and extracts search, sort and filters.
// It never fails; malformed numbers degrade to defaults
func Normalize(raw RawQuery) Normalized {
	limit := ClampLimit(ParseLimit(raw.Limit))
	page := ParsePage(raw.Page)

	n := Normalized{
		Search:        normalize.Term(raw.SearchTerm),
		SortField:     strings.TrimSpace(raw.SortField),
		SortDirection: strings.TrimSpace(raw.SortDirection),
		Page:          page,
		Limit:         limit,
		Skip:          Skip(page, limit),
		Cursor:        strings.TrimSpace(raw.Cursor),
	}
	if raw.SearchFields != "" {
		for _, f := range strings.Split(raw.SearchFields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				n.SearchFields = append(n.SearchFields, f)
			}
		}
	}
	if len(raw.Filters) > 0 {
		n.Filters = make(map[string]string, len(raw.Filters))
		for k, v := range raw.Filters {
			if _, skip := reserved[k]; skip {
				continue
			}
			n.Filters[k] = normalize.Term(v)
		}
	}
	return n
}

// ParseLimit reads a limit, nil when absent or not a number.
// Out of range values come back as ±Inf so ClampLimit pins them to a bound
func ParseLimit(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	return &f
}

// ClampLimit returns DefaultLimit for nil or NaN, otherwise limit clamped to [1, MaxLimit]
func ClampLimit(limit *float64) int {
	if limit == nil || math.IsNaN(*limit) {
		return DefaultLimit
	}
	l := math.Trunc(*limit)
	switch {
	case l < 1:
		return 1
	case l > MaxLimit:
		return MaxLimit
	}
	return int(l)
}

// ParsePage reads a 1-based page number, 1 when absent or malformed
func ParsePage(raw string) int {
	p, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || p < 1 {
		return 1
	}
	if p > maxPage {
		return maxPage
	}
	return int(p)
}

// Skip is the offset for a page, never negative
func Skip(page, limit int) int {
	return max((page-1)*limit, 0)
}
