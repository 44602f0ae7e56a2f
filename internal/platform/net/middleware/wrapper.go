// Package middleware provides thin adapters over chi middleware plus the in house ones
package middleware

import (
	"net/http"
	"time"

	pnet "dashkit/internal/platform/net"
	pstrings "dashkit/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http decorator shape every constructor here returns
type Middleware = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-Id, stores it on context and echoes it back
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(pnet.RequestIDHeader, pnet.RequestID(r.Context()))
			next.ServeHTTP(w, r)
		})
		return chimw.RequestID(echo)
	}
}

// RealIP sets RemoteAddr to the upstream IP based on X-Forwarded-For headers
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache sets headers to disable client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress wraps chi's compressor. level usually flate.DefaultCompression or flate.BestSpeed
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// StripSlashes strips a trailing slash from the request path
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat replies 200 to GET path before routing, for load balancer health checks
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors with defaults for a JSON api
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id"}),
		ExposedHeaders: pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-Id", "Retry-After"}),
		// credentials with a wildcard origin are rejected by browsers
		AllowCredentials: o.AllowCredentials && !pstrings.Has(o.AllowedOrigins, "*"),
		MaxAge:           o.MaxAge,
	})
}
