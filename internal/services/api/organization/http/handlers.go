// Package http provides http transport for organization statistics
package http

import (
	"bytes"
	stdhttp "net/http"

	"galaxy/internal/core/mapping"
	"galaxy/internal/modkit/httpkit"
	"galaxy/internal/services/api/organization/domain"
	svc "galaxy/internal/services/api/organization/service"
)

// Register mounts organization endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.HashtagInput](r, "/hashtags", h.hashtags)
}

type handlers struct{ svc svc.Service }

// @Summary Organization hashtag statistics
// @Description Totals of new buildings, amenities, places, road kilometers and contributors per hashtag and bucket
// @Tags Organization
// @Accept json
// @Produce json,text/csv
// @Param payload body domain.HashtagInput true "Hashtags, frequency and optional dates"
// @Success 200 {array} domain.HashtagBucket "ok"
// @Router /organization/hashtags [post]
func (h *handlers) hashtags(r *stdhttp.Request, in domain.HashtagInput) (any, error) {
	buckets, err := h.svc.Hashtags(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if in.OutputType != domain.FormatCSV {
		return buckets, nil
	}
	var buf bytes.Buffer
	if err := mapping.WriteCSV(&buf, buckets); err != nil {
		return nil, err
	}
	return httpkit.CSV("organization_hashtags.csv", buf.Bytes()), nil
}
