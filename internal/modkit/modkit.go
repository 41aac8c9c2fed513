// Package modkit holds the pieces every API module is assembled from
package modkit

import (
	"net/http"
	"strings"

	phttp "galaxy/internal/platform/net/http"
)

// Module is what api.Mount needs from a report module
type Module interface {
	MountRoutes(r phttp.Router)
	Name() string
	Prefix() string
}

// Base implements Module for a register func plus options
type Base struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(phttp.Router)
}

var _ Module = Base{}

// Build applies opts in order, so options passed after a module's defaults win
func Build(register func(phttp.Router), opts ...Option) Base {
	b := Base{register: register}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Name panics on an unnamed module
func (b Base) Name() string {
	if strings.TrimSpace(b.name) == "" {
		panic("modkit: module name is required")
	}
	return b.name
}

// Prefix normalizes to one leading slash and no trailing one, panicking on "" or "/"
func (b Base) Prefix() string {
	p := "/" + strings.Trim(b.prefix, " /")
	if p == "/" {
		panic("modkit: module " + b.name + " needs a prefix")
	}
	return p
}

// MountRoutes registers the module under its prefix with its own middleware
func (b Base) MountRoutes(r phttp.Router) {
	r.Route(b.Prefix(), func(rr phttp.Router) {
		if len(b.mws) > 0 {
			rr.Use(b.mws...)
		}
		if b.register != nil {
			b.register(rr)
		}
	})
}
