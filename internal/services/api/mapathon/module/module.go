// Package module wires mapathon reports into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	mapathonhttp "galaxy/internal/services/api/mapathon/http"
	mapathonrepo "galaxy/internal/services/api/mapathon/repo"
	mapathonsvc "galaxy/internal/services/api/mapathon/service"
)

// New constructs the mapathon module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := mapathonsvc.New(deps.Source, mapathonrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("mapathon"), modkit.WithPrefix("/mapathon")}
	return modkit.Build(func(r httpkit.Router) { mapathonhttp.Register(r, svc) }, append(defaults, opts...)...)
}
