package query_test

import (
	"math"
	"net/url"
	"testing"

	"dashkit/internal/core/query"
)

func f64(v float64) *float64 { return &v }

func TestClampLimit_Totality(t *testing.T) {
	cases := []struct {
		name string
		in   *float64
		want int
	}{
		{"absent", nil, 20},
		{"nan", f64(math.NaN()), 20},
		{"zero", f64(0), 1},
		{"negative", f64(-5), 1},
		{"one", f64(1), 1},
		{"max", f64(100), 100},
		{"over max", f64(101), 100},
		{"way over", f64(10000), 100},
		{"fraction", f64(2.7), 2},
		{"sub one fraction", f64(0.5), 1},
		{"inf", f64(math.Inf(1)), 100},
		{"neg inf", f64(math.Inf(-1)), 1},
	}
	for _, c := range cases {
		got := query.ClampLimit(c.in)
		if got != c.want {
			t.Fatalf("%s: ClampLimit = %d, want %d", c.name, got, c.want)
		}
		if got < 1 || got > query.MaxLimit {
			t.Fatalf("%s: %d outside [1,%d]", c.name, got, query.MaxLimit)
		}
		if again := query.ClampLimit(c.in); again != got {
			t.Fatalf("%s: not deterministic %d vs %d", c.name, got, again)
		}
	}
}

func TestParseLimit(t *testing.T) {
	if query.ParseLimit("") != nil || query.ParseLimit("abc") != nil {
		t.Fatalf("empty and non numeric limits must be absent")
	}
	if got := query.ClampLimit(query.ParseLimit("NaN")); got != query.DefaultLimit {
		t.Fatalf("NaN limit = %d, want default", got)
	}
	if p := query.ParseLimit(" 42 "); p == nil || *p != 42 {
		t.Fatalf("ParseLimit(42) = %v", p)
	}
}

func TestParseLimit_OutOfRangeClampsToBounds(t *testing.T) {
	cases := map[string]int{
		"1e400":     query.MaxLimit,
		"Infinity":  query.MaxLimit,
		"-1e400":    1,
		"-Infinity": 1,
		"1e-400":    1,
	}
	for in, want := range cases {
		if got := query.ClampLimit(query.ParseLimit(in)); got != want {
			t.Fatalf("limit %q = %d, want %d", in, got, want)
		}
	}
}

func TestSkip_NonNegative(t *testing.T) {
	for _, page := range []int{1, 2, -1, 0} {
		for _, limit := range []int{1, 20, 100} {
			if s := query.Skip(page, limit); s < 0 {
				t.Fatalf("Skip(%d,%d) = %d", page, limit, s)
			}
		}
	}
	if got := query.Skip(3, 20); got != 40 {
		t.Fatalf("Skip(3,20) = %d, want 40", got)
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"": 1, "x": 1, "0": 1, "-1": 1, "1": 1, "7": 7, "99999999999999": math.MaxInt32}
	for in, want := range cases {
		if got := query.ParsePage(in); got != want {
			t.Fatalf("ParsePage(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestNormalize_FromValues(t *testing.T) {
	v := url.Values{}
	v.Set("searchTerm", "  foo   bar ")
	v.Set("page", "-3")
	v.Set("limit", "500")
	v.Set("sortField", "name")
	v.Set("sortDirection", "DESC")
	v.Set("cursor", "abc")
	v.Set("searchFields", "name, description,")
	v.Set("status", "active")

	n := query.Normalize(query.RawQueryFromValues(v))
	if n.Search != "foo   bar" {
		t.Fatalf("search = %q", n.Search)
	}
	if n.Page != 1 || n.Limit != 100 || n.Skip != 0 {
		t.Fatalf("page/limit/skip = %d/%d/%d", n.Page, n.Limit, n.Skip)
	}
	if n.SortField != "name" || n.SortDirection != "DESC" || n.Cursor != "abc" {
		t.Fatalf("sort/cursor = %q %q %q", n.SortField, n.SortDirection, n.Cursor)
	}
	if len(n.SearchFields) != 2 || n.SearchFields[0] != "name" || n.SearchFields[1] != "description" {
		t.Fatalf("search fields = %v", n.SearchFields)
	}
	if len(n.Filters) != 1 || n.Filters["status"] != "active" {
		t.Fatalf("filters = %v, want only status", n.Filters)
	}
}

func TestNormalize_KeepsInnerSpacing(t *testing.T) {
	n := query.Normalize(query.RawQuery{
		SearchTerm: " foo  bar ",
		Filters:    map[string]string{"name": "foo  bar\x00"},
	})
	if n.Search != "foo  bar" {
		t.Fatalf("search = %q", n.Search)
	}
	if n.Filters["name"] != "foo  bar" {
		t.Fatalf("filter = %q", n.Filters["name"])
	}
}

func TestNormalize_Defaults(t *testing.T) {
	n := query.Normalize(query.RawQuery{})
	if n.Page != 1 || n.Limit != query.DefaultLimit || n.Skip != 0 {
		t.Fatalf("defaults = %+v", n)
	}
	if n.Filters != nil || n.SearchFields != nil {
		t.Fatalf("expected no filters or search fields")
	}
}
