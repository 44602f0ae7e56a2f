// Package module wires dummies into the API using modkit
package module

import (
	"time"

	modkit "dashkit/internal/modkit"
	"dashkit/internal/modkit/httpkit"
	"dashkit/internal/modkit/repokit"
	dummieshttp "dashkit/internal/services/api/dummies/http"
	dummiesrepo "dashkit/internal/services/api/dummies/repo"
	dummiessvc "dashkit/internal/services/api/dummies/service"
)

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc dummiessvc.Service
}

// New builds the dummies module. Postgres backs it when deps.PG is set,
// otherwise records live in memory for the life of the process.
// Listing transactions are capped by CORE_API_DUMMY_STATEMENT_TIMEOUT (5s).
// A Ports value passed with modkit.WithPorts replaces the service entirely
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dummies"), modkit.WithPrefix("/dummy")}, opts...)...)

	m := &Module{b: b}
	switch p, ok := b.Ports.(Ports); {
	case ok && p.Service != nil:
		m.svc = p.Service
	case deps.PG != nil:
		db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(deps.Cfg.MayDuration("DUMMY_STATEMENT_TIMEOUT", 5*time.Second)))
		m.svc = dummiessvc.NewPG(db, dummiesrepo.NewPG())
	default:
		deps.Logger("dummies").Warn().Msg("postgres disabled, dummies are kept in memory")
		m.svc = dummiessvc.NewMemory(dummiesrepo.NewMemory())
	}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { dummieshttp.Register(rr, m.svc) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }
