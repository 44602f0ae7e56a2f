// Package migrate applies the embedded schema migrations with golang-migrate
package migrate

import (
	"embed"
	stderrs "errors"
	"strings"

	perr "dashkit/internal/platform/errors"
	"dashkit/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Source returns the embedded migration files as a golang-migrate source
func Source() (source.Driver, error) {
	d, err := iofs.New(files, "sql")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfiguration, "open embedded migrations")
	}
	return d, nil
}

// Migrator runs schema changes against one database
type Migrator struct {
	m *migrate.Migrate
}

// New opens a migrator for a postgres url (postgres://, postgresql:// or pgx5://)
func New(dbURL string, log *logger.Logger) (*Migrator, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	u, err := DriverURL(dbURL)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, u)
	if err != nil {
		return nil, perr.FromPostgres(err, "open migrator")
	}
	if log != nil {
		m.Log = zlog{l: log}
	}
	return &Migrator{m: m}, nil
}

// DriverURL rewrites a postgres url to the pgx5 scheme golang-migrate expects
func DriverURL(dbURL string) (string, error) {
	dbURL = strings.TrimSpace(dbURL)
	for _, scheme := range []string{"postgres://", "postgresql://", "pgx5://"} {
		if rest, ok := strings.CutPrefix(dbURL, scheme); ok && rest != "" {
			return "pgx5://" + rest, nil
		}
	}
	return "", perr.Configurationf("unsupported database url %q", redact(dbURL))
}

// Up applies every pending migration; an up to date schema is not an error
func (x *Migrator) Up() error {
	if err := x.m.Up(); err != nil && !stderrs.Is(err, migrate.ErrNoChange) {
		return perr.FromPostgres(err, "migrate up")
	}
	return nil
}

// Down reverts steps migrations, or all of them when steps <= 0
func (x *Migrator) Down(steps int) error {
	var err error
	if steps > 0 {
		err = x.m.Steps(-steps)
	} else {
		err = x.m.Down()
	}
	if err != nil && !stderrs.Is(err, migrate.ErrNoChange) {
		return perr.FromPostgres(err, "migrate down")
	}
	return nil
}

// Version reports the applied version; ok is false on a fresh database
func (x *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = x.m.Version()
	if stderrs.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, perr.FromPostgres(err, "migrate version")
	}
	return version, dirty, true, nil
}

// Force marks version as applied and clears the dirty flag without running anything
func (x *Migrator) Force(version int) error {
	if err := x.m.Force(version); err != nil {
		return perr.FromPostgres(err, "migrate force")
	}
	return nil
}

// Close releases the source and the database handle
func (x *Migrator) Close() error {
	srcErr, dbErr := x.m.Close()
	return stderrs.Join(srcErr, dbErr)
}

// zlog adapts zerolog to migrate.Logger
type zlog struct{ l *logger.Logger }

func (z zlog) Printf(format string, v ...any) {
	z.l.Info().Msgf(strings.TrimRight(format, "\n"), v...)
}

func (z zlog) Verbose() bool { return false }

// redact hides the password of a url for error messages
func redact(u string) string {
	at := strings.LastIndex(u, "@")
	sep := strings.Index(u, "://")
	if at < 0 || sep < 0 || at < sep {
		return u
	}
	cred := u[sep+3 : at]
	if i := strings.Index(cred, ":"); i >= 0 {
		return u[:sep+3] + cred[:i] + ":***" + u[at:]
	}
	return u
}
