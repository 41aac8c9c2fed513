// Package http provides http transport for mapathon reports
package http

import (
	stdhttp "net/http"

	"galaxy/internal/modkit/httpkit"
	"galaxy/internal/services/api/mapathon/domain"
	svc "galaxy/internal/services/api/mapathon/service"
)

// Register mounts mapathon endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.Input](r, "/summary", h.summary)
	httpkit.PostJSON[domain.Input](r, "/detail", h.detail)

	// raw mirror, free text hashtag matching
	httpkit.PostJSON[domain.Input](r, "/changesets", h.changesets)
}

type handlers struct{ svc svc.Service }

// @Summary Mapathon summary
// @Description Feature and action totals plus the contributor count of changesets matching the hashtags or projects inside a window of at most 24 hours
// @Tags Mapathon
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Mapathon window and hashtags"
// @Success 200 {object} domain.Summary "ok"
// @Router /mapathon/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.Summary(r.Context(), in)
}

// @Summary Mapathon detail
// @Description Per contributor feature totals, buildings, editors and tasking manager activity
// @Tags Mapathon
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Mapathon window and hashtags"
// @Success 200 {object} domain.Detail "ok"
// @Router /mapathon/detail [post]
func (h *handlers) detail(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.Detail(r.Context(), in)
}

// @Summary Mapathon changesets
// @Tags Mapathon
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Mapathon window and hashtags"
// @Success 200 {array} domain.Changeset "ok"
// @Router /mapathon/changesets [post]
func (h *handlers) changesets(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.Changesets(r.Context(), in)
}
