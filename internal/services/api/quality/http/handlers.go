// Package http provides http transport for data quality reports
package http

import (
	stdhttp "net/http"

	"galaxy/internal/modkit/httpkit"
	"galaxy/internal/services/api/quality/domain"
	svc "galaxy/internal/services/api/quality/service"
)

// Register mounts data quality endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.HashtagInput](r, "/hashtag-reports", h.hashtagReport)
	httpkit.PostJSON[domain.HashtagFilters](r, "/hashtag-reports/summary", h.hashtagSummary)
	httpkit.PostJSON[domain.UsernameInput](r, "/user-reports", h.usernameReport)
	httpkit.PostJSON[domain.ProjectInput](r, "/project-reports", h.projectReport)
}

type handlers struct{ svc svc.Service }

// document writes a rendered report without the envelope
func document(d domain.Document, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if d.Format == domain.FormatCSV {
		return httpkit.CSV(d.Filename, d.Body), nil
	}
	return httpkit.GeoJSON(d.Body), nil
}

// @Summary Data quality by hashtag
// @Description Features flagged by validation inside changesets carrying the hashtags, or inside the geometry (at most 5000 km2), over at most 24 hours
// @Tags Data quality
// @Accept json
// @Produce json,text/csv
// @Param payload body domain.HashtagInput true "Hashtags, geometry and issue types"
// @Success 200 {object} map[string]any "geojson feature collection or csv attachment"
// @Router /data-quality/hashtag-reports [post]
func (h *handlers) hashtagReport(r *stdhttp.Request, in domain.HashtagInput) (any, error) {
	return document(h.svc.HashtagReport(r.Context(), in))
}

// @Summary Data quality hashtag summary
// @Tags Data quality
// @Accept json
// @Produce json
// @Param payload body domain.HashtagFilters true "Hashtags, geometry and issue types"
// @Success 200 {array} domain.SummaryRow "ok"
// @Router /data-quality/hashtag-reports/summary [post]
func (h *handlers) hashtagSummary(r *stdhttp.Request, in domain.HashtagFilters) (any, error) {
	return h.svc.HashtagSummary(r.Context(), in)
}

// @Summary Data quality by user
// @Tags Data quality
// @Accept json
// @Produce json,text/csv
// @Param payload body domain.UsernameInput true "Usernames, window and issue types"
// @Success 200 {object} map[string]any "geojson feature collection or csv attachment"
// @Router /data-quality/user-reports [post]
func (h *handlers) usernameReport(r *stdhttp.Request, in domain.UsernameInput) (any, error) {
	return document(h.svc.UsernameReport(r.Context(), in))
}

// @Summary Data quality by tasking manager project
// @Tags Data quality
// @Accept json
// @Produce json,text/csv
// @Param payload body domain.ProjectInput true "Project ids and issue types"
// @Success 200 {object} map[string]any "geojson feature collection or csv attachment"
// @Router /data-quality/project-reports [post]
func (h *handlers) projectReport(r *stdhttp.Request, in domain.ProjectInput) (any, error) {
	return document(h.svc.ProjectReport(r.Context(), in))
}
