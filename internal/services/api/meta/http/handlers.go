// Package http provides meta endpoints
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"dashkit/internal/core/version"
	"dashkit/internal/modkit/httpkit"
)

// Pinger is satisfied by storage seams that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	// PG is nil when postgres is disabled and the pg check is skipped
	PG        Pinger
	StartedAt time.Time
	// Timeout bounds each dependency check; zero means 2s
	Timeout time.Duration
	// HeapLimit is the heap in use, in bytes, above which memory_heap reports fail; zero means 150MiB
	HeapLimit uint64
	// DiskPath is the volume checked by storage; empty means the working directory
	DiskPath string
	// DiskThreshold is the used fraction above which storage reports fail; zero means 0.9
	DiskThreshold float64
}

// Check statuses
const (
	StatusOK      = "ok"
	StatusFail    = "fail"
	StatusSkipped = "skipped"
)

type handlers struct {
	deps Deps
	now  func() time.Time
	heap func() uint64
	disk func(path string) (used float64, err error)
}

// Register mounts the meta routes. live and liveness are aliases, as are
// ready and readiness
func Register(r httpkit.Router, d Deps) {
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Second
	}
	if d.HeapLimit == 0 {
		d.HeapLimit = 150 << 20
	}
	if d.DiskThreshold <= 0 {
		d.DiskThreshold = 0.9
	}
	register(r, &handlers{deps: d, now: time.Now, heap: heapInUse, disk: diskUsed})
}

func register(r httpkit.Router, h *handlers) {
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/health/live", h.live)
	httpkit.Get(r, "/health/liveness", h.live)
	httpkit.Get(r, "/health/ready", h.ready)
	httpkit.Get(r, "/health/readiness", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// Check describes a single dependency check
type Check struct {
	Name         string `json:"name" example:"pg"`
	Status       string `json:"status" example:"ok"` // ok fail skipped
	ResponseTime string `json:"responseTime,omitempty" example:"3ms"`
	Error        string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// HealthResponse summarizes liveness, readiness or full health
type HealthResponse struct {
	Status string  `json:"status" example:"ok"` // ok fail
	Uptime int64   `json:"uptime,omitempty" example:"300"`
	Checks []Check `json:"checks,omitempty"`
}

// @Summary Full health check: database, heap and disk
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *handlers) health(r *http.Request) (any, error) {
	out := HealthResponse{
		Status: StatusOK,
		Checks: []Check{h.checkPG(r.Context()), h.checkHeap(), h.checkDisk()},
	}
	if !h.deps.StartedAt.IsZero() {
		out.Uptime = int64(h.now().Sub(h.deps.StartedAt) / time.Second)
	}
	// heap and disk are reported but only the database decides the status
	return h.reply(out, out.Checks[0])
}

// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health/live [get]
// @Router /health/liveness [get]
func (h *handlers) live(_ *http.Request) (any, error) {
	return HealthResponse{Status: StatusOK}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health/ready [get]
// @Router /health/readiness [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	pg := h.checkPG(r.Context())
	return h.reply(HealthResponse{Status: StatusOK, Checks: []Check{pg}}, pg)
}

// reply turns out into a 503 when the deciding check failed
func (h *handlers) reply(out HealthResponse, decisive Check) (any, error) {
	if decisive.Status != StatusFail {
		return out, nil
	}
	out.Status = StatusFail
	return httpkit.Response{
		Status:  http.StatusServiceUnavailable,
		Message: "dependency unavailable",
		Body:    out,
	}, nil
}

func (h *handlers) checkPG(ctx context.Context) Check {
	c := Check{Name: "pg", Status: StatusSkipped}
	if h.deps.PG == nil {
		return c
	}
	ctx, cancel := context.WithTimeout(ctx, h.deps.Timeout)
	defer cancel()

	start := h.now()
	err := h.deps.PG.Ping(ctx)
	c.ResponseTime = fmt.Sprintf("%dms", h.now().Sub(start).Milliseconds())
	if err != nil {
		c.Status, c.Error = StatusFail, err.Error()
		return c
	}
	c.Status = StatusOK
	return c
}

func (h *handlers) checkHeap() Check {
	c := Check{Name: "memory_heap", Status: StatusOK}
	if used := h.heap(); used > h.deps.HeapLimit {
		c.Status = StatusFail
		c.Error = fmt.Sprintf("heap in use %dMiB exceeds %dMiB", used>>20, h.deps.HeapLimit>>20)
	}
	return c
}

func (h *handlers) checkDisk() Check {
	c := Check{Name: "storage", Status: StatusOK}
	path := h.deps.DiskPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			c.Status, c.Error = StatusFail, err.Error()
			return c
		}
		path = wd
	}
	used, err := h.disk(path)
	switch {
	case errors.Is(err, errDiskUnsupported):
		c.Status = StatusSkipped
	case err != nil:
		c.Status, c.Error = StatusFail, err.Error()
	case used > h.deps.DiskThreshold:
		c.Status = StatusFail
		c.Error = fmt.Sprintf("%.0f%% of %s used, threshold %.0f%%", used*100, path, h.deps.DiskThreshold*100)
	}
	return c
}

func heapInUse() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapInuse
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
