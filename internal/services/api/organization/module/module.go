// Package module wires organization hashtag statistics into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	orghttp "galaxy/internal/services/api/organization/http"
	orgrepo "galaxy/internal/services/api/organization/repo"
	orgsvc "galaxy/internal/services/api/organization/service"
)

// New constructs the organization module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := orgsvc.New(deps.Source, orgrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("organization"), modkit.WithPrefix("/organization")}
	return modkit.Build(func(r httpkit.Router) { orghttp.Register(r, svc) }, append(defaults, opts...)...)
}
