// Package module wires tasking manager reports into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	taskinghttp "galaxy/internal/services/api/tasking/http"
	taskingrepo "galaxy/internal/services/api/tasking/repo"
	taskingsvc "galaxy/internal/services/api/tasking/service"
)

// New constructs the tasking module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := taskingsvc.New(deps.Source, taskingrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("tasking"), modkit.WithPrefix("/tasking-manager")}
	return modkit.Build(func(r httpkit.Router) { taskinghttp.Register(r, svc) }, append(defaults, opts...)...)
}
