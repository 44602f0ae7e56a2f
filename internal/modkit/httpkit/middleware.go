package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"dashkit/internal/platform/config"
	"dashkit/internal/platform/net/middleware"
)

// StackOptions tunes the root and per api middleware chains
type StackOptions struct {
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
	Timeout     time.Duration
	SlowLog     time.Duration
	// Metrics is optional; nil skips instrumentation
	Metrics *middleware.Metrics
}

// StackFromConfig reads CORS_ORIGINS, RATE_RPS, RATE_BURST, REQUEST_TIMEOUT and SLOW_LOG from cfg
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		RateRPS:     cfg.MayFloat64("RATE_RPS", 20),
		RateBurst:   cfg.MayInt("RATE_BURST", 40),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowLog:     cfg.MayDuration("SLOW_LOG", time.Second),
	}
}

// PingPath answers load balancer pings before any other middleware runs
const PingPath = "/ping"

// RootStack wraps the whole mux: correlation, observability, then safety.
// Health checks and scrapes are kept out of the access log
func RootStack(o StackOptions) []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		middleware.Heartbeat(PingPath),
		middleware.RealIP(),
		middleware.RequestID(),
	}
	if o.Metrics != nil {
		mws = append(mws, o.Metrics.Handler())
	}
	return append(mws,
		middleware.AccessLog(middleware.AccessLogOptions{
			Slow: o.SlowLog,
			Skip: []string{"/health/live", "/health/liveness", "/metrics"},
		}),
		middleware.Recover(),
		middleware.StripSlashes(),
		middleware.Compress(flate.BestSpeed),
	)
}

// CommonStack is applied to each versioned api scope
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.RateLimit(middleware.RateLimitOptions{RPS: o.RateRPS, Burst: o.RateBurst}),
		middleware.NoCache(),
	}
	if o.Timeout > 0 {
		mws = append(mws, middleware.Timeout(o.Timeout))
	}
	return mws
}
