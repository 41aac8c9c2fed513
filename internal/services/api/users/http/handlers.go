// Package http provides http transport for osm users
package http

import (
	stdhttp "net/http"

	"galaxy/internal/modkit/httpkit"
	"galaxy/internal/services/api/users/domain"
	svc "galaxy/internal/services/api/users/service"
)

// Register mounts user endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ListInput](r, "/ids", h.list)
	httpkit.PostJSON[domain.StatisticsInput](r, "/statistics", h.statistics)
}

type handlers struct{ svc svc.Service }

// @Summary Osm ids of usernames
// @Description Resolves usernames that edited inside the window, at most 30 days
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Usernames and window"
// @Success 200 {array} domain.User "ok"
// @Router /osm-users/ids [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary User statistics
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.StatisticsInput true "User id, window and optional hashtags"
// @Success 200 {object} domain.Statistics "ok"
// @Router /osm-users/statistics [post]
func (h *handlers) statistics(r *stdhttp.Request, in domain.StatisticsInput) (any, error) {
	return h.svc.Statistics(r.Context(), in)
}
