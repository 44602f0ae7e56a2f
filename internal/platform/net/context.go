// Package net holds request scoped helpers shared by transports
package net

import (
	"context"
	stdnet "net"
	"net/http"

	"dashkit/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader is the inbound and echoed request id header
const RequestIDHeader = "X-Request-Id"

// WithRequest stores reqID where chi's RequestID middleware would, so both agree
func WithRequest(ctx context.Context, reqID string) context.Context {
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// ClientIP returns the host part of r.RemoteAddr.
// Run chi's RealIP first when behind a proxy
func ClientIP(r *http.Request) string {
	host, _, err := stdnet.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
