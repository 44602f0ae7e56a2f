// Package modkit provides module wiring and core deps
package modkit

import (
	"dashkit/internal/modkit/repokit"
	"dashkit/internal/platform/config"
	"dashkit/internal/platform/logger"
)

// Deps holds core dependencies passed to modules.
// PG is nil when postgres is disabled; modules fall back to in memory storage
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// Logger returns Log, or a component logger named after the module when Log is unset
func (d Deps) Logger(module string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(module)
}
