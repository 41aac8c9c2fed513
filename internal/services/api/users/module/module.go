// Package module wires osm user statistics into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	usershttp "galaxy/internal/services/api/users/http"
	usersrepo "galaxy/internal/services/api/users/repo"
	userssvc "galaxy/internal/services/api/users/service"
)

// New constructs the users module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := userssvc.New(deps.Source, usersrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("users"), modkit.WithPrefix("/osm-users")}
	return modkit.Build(func(r httpkit.Router) { usershttp.Register(r, svc) }, append(defaults, opts...)...)
}
