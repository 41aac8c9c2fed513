// Package module wires health, readiness and version endpoints into the API
package module

import (
	"time"

	"galaxy/internal/core/report"
	"galaxy/internal/core/version"
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	metahttp "galaxy/internal/services/api/meta/http"
)

// New constructs the meta module. Readiness covers every report source;
// a store that cannot report on them leaves readiness at "degraded".
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
	}
	for _, src := range report.Sources {
		d.Expected = append(d.Expected, src.String())
	}
	if rd, ok := deps.DB.(metahttp.Readiness); ok {
		d.Sources = rd
	}

	defaults := []modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}
	return modkit.Build(func(r httpkit.Router) { metahttp.Register(r, d) }, append(defaults, opts...)...)
}
