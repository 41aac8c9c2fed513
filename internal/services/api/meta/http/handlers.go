// Package http serves the liveness, readiness and build info endpoints
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"galaxy/internal/core/version"
	"galaxy/internal/modkit/httpkit"
)

// Readiness is satisfied by *store.Store
type Readiness interface {
	Names() []string
	Ping(ctx context.Context, name string) error
	// State is the breaker state of a source, empty when it has none
	State(name string) string
}

type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Sources is nil when no store is wired
	Sources Readiness
	// Expected lists every source the api knows; unregistered ones report disabled
	Expected []string
	// PingTimeout bounds each source ping, default 2s
	PingTimeout time.Duration
}

// per source and overall readiness
const (
	CheckOK       = "ok"
	CheckDegraded = "degraded"
	CheckFail     = "fail"
	CheckDisabled = "disabled"
)

type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"galaxy-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

type ReadyCheck struct {
	Name    string `json:"name"              example:"underpass"`
	Status  string `json:"status"            example:"ok"`
	Breaker string `json:"breaker,omitempty" example:"closed"`
	Error   string `json:"error,omitempty"   example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T13:05:00Z"`
}

type handlers struct{ Deps }

// Register mounts /health, /ready and /version
func Register(r httpkit.Router, d Deps) {
	if d.PingTimeout <= 0 {
		d.PingTimeout = 2 * time.Second
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness with a ping per source
// @Description fail (503) when an enabled source does not answer; degraded when a source is disabled or its breaker is not closed
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse "an enabled source is down"
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	names := h.Expected
	enabled := map[string]bool{}
	if h.Sources != nil {
		for _, n := range h.Sources.Names() {
			enabled[n] = true
		}
		if len(names) == 0 {
			names = h.Sources.Names()
		}
	}

	// sources are pinged in parallel so one hanging database costs a single PingTimeout
	checks := make([]ReadyCheck, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		if !enabled[name] {
			checks[i] = ReadyCheck{Name: name, Status: CheckDisabled}
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = h.check(r.Context(), name)
		}()
	}
	wg.Wait()

	resp := ReadyResponse{Status: overall(checks), Checks: checks, Now: stamp(time.Now())}
	if resp.Status == CheckFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
	}
	return resp, nil
}

func (h handlers) check(ctx context.Context, name string) ReadyCheck {
	ctx, cancel := context.WithTimeout(ctx, h.PingTimeout)
	defer cancel()

	c := ReadyCheck{Name: name, Status: CheckOK, Breaker: h.Sources.State(name)}
	if err := h.Sources.Ping(ctx, name); err != nil {
		c.Status, c.Error = CheckFail, err.Error()
	}
	return c
}

// overall is fail if any source failed, degraded if any is disabled or not closed
func overall(checks []ReadyCheck) string {
	status := CheckOK
	for _, c := range checks {
		switch {
		case c.Status == CheckFail:
			return CheckFail
		case c.Status == CheckDisabled, c.Breaker != "" && c.Breaker != "closed":
			status = CheckDegraded
		}
	}
	return status
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) { return version.Info(), nil }
