package query_test

import (
	"testing"

	"dashkit/internal/core/query"
)

func TestResolveOrder(t *testing.T) {
	fallback := query.Order{{Field: "createdAt", Direction: query.Desc}}

	if got := query.ResolveOrder(nil, fallback); len(got) != 1 || got[0] != fallback[0] {
		t.Fatalf("nil sort should return fallback, got %v", got)
	}

	got := query.ResolveOrder(&query.SortSpec{Field: "name"}, fallback)
	if len(got) != 1 || got[0] != (query.OrderTerm{Field: "name", Direction: query.Asc}) {
		t.Fatalf("explicit sort should drop fallback and default to asc, got %v", got)
	}

	got = query.ResolveOrder(&query.SortSpec{Field: "name", Direction: query.Desc}, fallback)
	if got[0].Direction != query.Desc {
		t.Fatalf("direction not kept: %v", got)
	}
}

func TestWithTieBreak(t *testing.T) {
	o := query.WithTieBreak(query.Order{{Field: "name", Direction: query.Desc}}, "id")
	if len(o) != 2 || o[1] != (query.OrderTerm{Field: "id", Direction: query.Asc}) {
		t.Fatalf("tie-break not appended: %v", o)
	}
	same := query.Order{{Field: "id", Direction: query.Desc}}
	if got := query.WithTieBreak(same, "id"); len(got) != 1 || got[0].Direction != query.Desc {
		t.Fatalf("existing id term must be kept as is: %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]query.Direction{"": query.Asc, "asc": query.Asc, "ASC": query.Asc, " desc ": query.Desc} {
		got, ok := query.ParseDirection(in)
		if !ok || got != want {
			t.Fatalf("ParseDirection(%q) = %q,%v", in, got, ok)
		}
	}
	if _, ok := query.ParseDirection("sideways"); ok {
		t.Fatalf("bad direction accepted")
	}
}
