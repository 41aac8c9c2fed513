// Package module wires data quality reports into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	qualityhttp "galaxy/internal/services/api/quality/http"
	qualityrepo "galaxy/internal/services/api/quality/repo"
	qualitysvc "galaxy/internal/services/api/quality/service"
)

// New constructs the quality module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := qualitysvc.New(deps.Source, qualityrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("quality"), modkit.WithPrefix("/data-quality")}
	return modkit.Build(func(r httpkit.Router) { qualityhttp.Register(r, svc) }, append(defaults, opts...)...)
}
