package bind

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	perr "dashkit/internal/platform/errors"
)

type payload struct {
	Name        string  `json:"name" validate:"required,notblank,min=3"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=15"`
}

func parse(body string) (payload, error) {
	return ParseJSON[payload](httptest.NewRequest("POST", "/", strings.NewReader(body)))
}

func TestParseJSON(t *testing.T) {
	got, err := parse(`{"name":"Alice","description":"a long enough description"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alice" || got.Description == nil {
		t.Fatalf("got %+v", got)
	}

	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"empty", ``, perr.ErrorCodeJSON, "", "empty body"},
		{"broken", `{"name":`, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", `{"name":"Alice","age":3}`, perr.ErrorCodeJSON, "", "unknown field"},
		{"trailing", `{"name":"Alice"} {}`, perr.ErrorCodeJSON, "", "trailing"},
		{"missing name", `{}`, perr.ErrorCodeValidation, "name", "name is a required field"},
		{"short name", `{"name":"Al"}`, perr.ErrorCodeValidation, "name", "name must be at least 3 characters"},
		{"blank name", `{"name":"    "}`, perr.ErrorCodeValidation, "name", "name must not be blank"},
		{"short description", `{"name":"Alice","description":"short"}`, perr.ErrorCodeValidation, "description", "description must be at least 15"},
	}
	for _, c := range cases {
		_, err := parse(c.body)
		e, ok := perr.As(err)
		if !ok || e.Code() != c.code || e.Field() != c.field || !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: got %v (code %v field %q)", c.name, err, perr.CodeOf(err), perr.WireFrom(err).Field)
		}
	}
}

func TestParseJSON_BodyCap(t *testing.T) {
	big := `{"name":"` + strings.Repeat("a", MaxBody) + `"}`
	if _, err := parse(big); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("oversized body should fail as JSON error, got %v", err)
	}
}

func TestStruct_InvalidTarget(t *testing.T) {
	if err := Struct(42); perr.CodeOf(err) != perr.ErrorCodeUnknown {
		t.Fatalf("non struct should be an internal error, got %v", err)
	}
}

func TestFieldAndMessage(t *testing.T) {
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil error = %q %q", f, m)
	}
	if f, m := FieldAndMessage(errors.New("plain")); f != "" || m != "plain" {
		t.Fatalf("plain error = %q %q", f, m)
	}
}
