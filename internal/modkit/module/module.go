// Package module defines the contract every API module satisfies
package module

import (
	phttp "dashkit/internal/platform/net/http"
)

// Module mounts its routes and exposes a ports value for other modules.
// It lives apart from modkit so a module package can export its own Ports without import cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
