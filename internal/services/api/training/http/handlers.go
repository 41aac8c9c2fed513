// Package http provides http transport for training events
package http

import (
	stdhttp "net/http"

	"galaxy/internal/modkit/httpkit"
	"galaxy/internal/services/api/training/domain"
	svc "galaxy/internal/services/api/training/service"
)

// Register mounts training endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/organisations", h.organisations)
	httpkit.PostJSON[domain.ListInput](r, "/", h.list)
}

type handlers struct{ svc svc.Service }

// @Summary Training organisations
// @Tags Training
// @Produce json
// @Success 200 {array} domain.Organisation "ok"
// @Router /training/organisations [get]
func (h *handlers) organisations(r *stdhttp.Request) (any, error) {
	return h.svc.Organisations(r.Context())
}

// @Summary Trainings
// @Description Training events filtered by date, organisation, topic and event type
// @Tags Training
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Optional filters"
// @Success 200 {array} domain.Training "ok"
// @Router /training [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}
