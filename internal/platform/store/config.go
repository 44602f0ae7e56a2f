package store

import (
	"time"

	"dashkit/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Boot knobs; zero means the defaults in openPG
	ConnectRetries int
	PingTimeout    time.Duration
}

// PGConfigFrom reads ENABLED, DBURL, MAX_CONNS, SLOW_MS and LOG_SQL from cfg,
// which is usually scoped to SERVICE_PGSQL_. DBURL is required only when enabled
func PGConfigFrom(cfg config.Conf) PGConfig {
	c := PGConfig{
		Enabled:     cfg.MayBool("ENABLED", true),
		MaxConns:    int32(cfg.MayInt("MAX_CONNS", 4)),
		SlowQueryMs: cfg.MayInt("SLOW_MS", 500),
		LogSQL:      cfg.MayBool("LOG_SQL", false),
	}
	if c.Enabled {
		c.URL = cfg.MustString("DBURL")
	}
	return c
}
