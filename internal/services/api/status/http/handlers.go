// Package http provides http transport for data recency
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"galaxy/internal/modkit/httpkit"
	svc "galaxy/internal/services/api/status/service"
)

// Register mounts status endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/{target}", h.freshness)
}

type handlers struct{ svc svc.Service }

// @Summary Data recency
// @Description Newest timestamp of the changesets or validation table and its lag behind now
// @Tags Status
// @Produce json
// @Param target path string true "changesets or validation"
// @Success 200 {object} domain.Freshness "ok"
// @Router /status/{target} [get]
func (h *handlers) freshness(r *stdhttp.Request) (any, error) {
	return h.svc.Freshness(r.Context(), chi.URLParam(r, "target"))
}
