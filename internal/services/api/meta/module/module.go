// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	modkit "dashkit/internal/modkit"
	"dashkit/internal/modkit/httpkit"
	"dashkit/internal/platform/store"

	metahttp "dashkit/internal/services/api/meta/http"
)

// Module implements modkit.Module. It mounts at the root unless WithPrefix says otherwise
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module. Health and readiness ping deps.PG when it can
// report readiness; the HEALTH_* knobs come from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)

	d := metahttp.Deps{
		StartedAt:     time.Now(),
		Timeout:       deps.Cfg.MayDuration("HEALTH_TIMEOUT", 2*time.Second),
		HeapLimit:     uint64(max(deps.Cfg.MayInt("HEALTH_HEAP_MB", 150), 1)) << 20,
		DiskPath:      deps.Cfg.MayString("HEALTH_DISK_PATH", ""),
		DiskThreshold: deps.Cfg.MayFloat64("HEALTH_DISK_THRESHOLD", 0.9),
	}
	if p, ok := deps.PG.(store.Pinger); ok {
		d.PG = p
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
