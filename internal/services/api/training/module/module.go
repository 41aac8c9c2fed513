// Package module wires training events into the API
package module

import (
	modkit "galaxy/internal/modkit"
	"galaxy/internal/modkit/httpkit"
	traininghttp "galaxy/internal/services/api/training/http"
	trainingrepo "galaxy/internal/services/api/training/repo"
	trainingsvc "galaxy/internal/services/api/training/service"
)

// New constructs the training module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := trainingsvc.New(deps.Source, trainingrepo.NewPG(), deps.QueryTimeout)
	defaults := []modkit.Option{modkit.WithName("training"), modkit.WithPrefix("/training")}
	return modkit.Build(func(r httpkit.Router) { traininghttp.Register(r, svc) }, append(defaults, opts...)...)
}
