// Package module wires source freshness into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	statushttp "galaxy/internal/services/api/status/http"
	statusrepo "galaxy/internal/services/api/status/repo"
	statussvc "galaxy/internal/services/api/status/service"
)

// New constructs the status module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := statussvc.New(deps.Source, statusrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("status"), modkit.WithPrefix("/status")}
	return modkit.Build(func(r httpkit.Router) { statushttp.Register(r, svc) }, append(defaults, opts...)...)
}
