// Package store owns the process wide storage handles. Postgres is the only
// backend; it is optional and a disabled backend stays nil
package store

import (
	"context"
	"errors"
	"fmt"

	"dashkit/internal/platform/logger"
)

type (
	// Row is one result row
	Row interface {
		Scan(dest ...any) error
	}

	// Rows is a result set; callers must Close it
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close()
		Columns() []string
	}

	// CommandTag reports what a write did
	CommandTag interface {
		String() string
		RowsAffected() int64
	}
)

// RowQuerier runs single statements
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs statements directly or grouped in a transaction.
// ReadTx is read only at repeatable read, so every statement in fn sees one snapshot
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
	ReadTx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds the open backends. The zero value has none
type Store struct {
	Log logger.Logger
	PG  TxRunner
}

// Option adjusts a Store before backends open
type Option func(*Store) error

// WithLogger hands log to the backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open connects every backend cfg enables and waits until each answers
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if !cfg.PG.Enabled {
		return s, nil
	}
	db, err := openPG(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.PG = db
	return s, nil
}

// Ping checks every open backend that can be pinged
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
