package store

import (
	"context"
	"fmt"
	"time"

	"dashkit/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Boot defaults for waiting on postgres
const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	firstBackoff          = 150 * time.Millisecond
	maxBackoff            = 2 * time.Second
)

var pgOpen = pg.Open

// openPG opens the pool and returns the adapter once a ping succeeds.
// A database still starting up is retried with doubling backoff
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	db, err := pgOpen(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, applicationName(cfg.AppName))
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	wait := firstBackoff
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err = db.Pool.Ping(pingCtx)
		cancel()
		if err == nil {
			a := newPGAdapter(db)
			s.PG = a
			return a, nil
		}
		if attempt == attempts {
			db.Close()
			return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
		}
		s.Log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(2*wait, maxBackoff)
	}
}

// applicationName tags every pooled connection so pg_stat_activity shows who is connected
func applicationName(name string) func(*pgxpool.Config) {
	return func(pc *pgxpool.Config) {
		if name == "" {
			return
		}
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams["application_name"] = name
	}
}
