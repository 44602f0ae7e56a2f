package net_test

import (
	"context"
	"net/http/httptest"
	"testing"

	pnet "dashkit/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	if ctx := pnet.WithRequest(base, ""); ctx != base {
		t.Fatalf("empty id should leave ctx untouched")
	}
	if got := pnet.RequestID(base); got != "" {
		t.Fatalf("RequestID on bare ctx = %q", got)
	}
	if got := pnet.RequestID(pnet.WithRequest(base, "req-123")); got != "req-123" {
		t.Fatalf("RequestID = %q want req-123", got)
	}
}

func TestClientIP(t *testing.T) {
	cases := map[string]string{
		"10.0.0.7:5123":   "10.0.0.7",
		"[2001:db8::1]:80": "2001:db8::1",
		"unix-socket":     "unix-socket",
	}
	for addr, want := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = addr
		if got := pnet.ClientIP(r); got != want {
			t.Fatalf("ClientIP(%q) = %q want %q", addr, got, want)
		}
	}
}
