package modkit

import (
	"net/http"
	"strings"

	"dashkit/internal/modkit/httpkit"
	str "dashkit/internal/platform/strings"
)

// Built is a module's resolved options
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies opts in order; Register defaults to a no-op
func Build(opts ...Option) Built {
	var b Built
	for _, opt := range opts {
		opt(&b)
	}
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}

// Mount registers routes under the module prefix with its middlewares,
// followed by anything passed through WithRegister.
// An empty prefix mounts the routes in a group on r itself
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	mount := func(sub httpkit.Router) {
		routes(sub)
		b.Register(sub)
	}
	if strings.Trim(b.Prefix, " /") == "" {
		r.Group(func(g httpkit.Router) {
			if len(b.Mw) > 0 {
				g.Use(b.Mw...)
			}
			mount(g)
		})
		return
	}
	httpkit.MountUnder(r, str.MustPrefix(b.Prefix), b.Mw, mount)
}
