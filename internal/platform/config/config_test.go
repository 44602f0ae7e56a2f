package config

import (
	"reflect"
	"testing"
	"time"

	kit "dashkit/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_API_PORT")
	}
	if got := api.Prefix("LOG_").key("LEVEL"); got != "CORE_API_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "CORE_API_LOG_LEVEL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://db/app ")
	if got := c.MustString("DBURL"); got != "postgres://db/app" {
		t.Fatalf("MustString = %q", got)
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	t.Setenv("SERVICE_PGSQL_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	t.Setenv("S_NAME", " dashkit ")
	if got := c.MayString("NAME", "x"); got != "dashkit" {
		t.Fatalf("MayString value = %q, want %q", got, "dashkit")
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_INT", " 7 ")
	t.Setenv("M_BAD_INT", "seven")
	t.Setenv("M_FLOAT", "0.5")
	t.Setenv("M_BAD_FLOAT", "half")
	t.Setenv("M_BOOL", "true")
	t.Setenv("M_BAD_BOOL", "sure")
	t.Setenv("M_DUR", "250ms")
	t.Setenv("M_BAD_DUR", "soon")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", c.MayInt("INT", 1), 7},
		{"int invalid", c.MayInt("BAD_INT", 1), 1},
		{"int missing", c.MayInt("NONE", 3), 3},
		{"float", c.MayFloat64("FLOAT", 1), 0.5},
		{"float invalid", c.MayFloat64("BAD_FLOAT", 20), 20.0},
		{"bool", c.MayBool("BOOL", false), true},
		{"bool invalid", c.MayBool("BAD_BOOL", false), false},
		{"duration", c.MayDuration("DUR", time.Second), 250 * time.Millisecond},
		{"duration invalid", c.MayDuration("BAD_DUR", time.Second), time.Second},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example , ,https://b.example ")
	got := c.MayCSV("CORS_ORIGINS", []string{"*"})
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("MayCSV = %v, want %v", got, want)
	}

	t.Setenv("CORE_API_EMPTY", " , , ")
	if got := c.MayCSV("EMPTY", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("MayCSV all blank = %v, want default", got)
	}
	if got := c.MayCSV("MISSING", nil); got != nil {
		t.Fatalf("MayCSV missing = %v, want nil", got)
	}
}
