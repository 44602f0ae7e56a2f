// Package api provides the HTTP API for the application
package api

import (
	"dashkit/internal/platform/config"
	"dashkit/internal/platform/logger"
	phttp "dashkit/internal/platform/net/http"
	"dashkit/internal/platform/net/middleware"
	"dashkit/internal/platform/store"

	"dashkit/internal/modkit"
	"dashkit/internal/modkit/httpkit"
	"dashkit/internal/modkit/module"
	"dashkit/internal/modkit/swaggerkit"

	dummiesmod "dashkit/internal/services/api/dummies/module"
	metamod "dashkit/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	// Metrics, when set, is exposed at /metrics
	Metrics *middleware.Metrics
	// Stack is applied to the versioned routes; zero means CommonStack(StackFromConfig(Config))
	Stack []middleware.Middleware
}

// Mount mounts meta at the root and the resource modules under /api/v1
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.Deps{Log: opt.Logger, Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	meta := metamod.New(deps)
	apiMods := []module.Module{
		dummiesmod.New(deps),
	}

	module.Register(meta.Name(), meta.Ports())
	meta.MountRoutes(r)
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Expose())
	}

	stack := opt.Stack
	if stack == nil {
		stack = httpkit.CommonStack(httpkit.StackFromConfig(opt.Config))
	}
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range apiMods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger, "/api/v1")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	return append([]module.Module{meta}, apiMods...)
}
