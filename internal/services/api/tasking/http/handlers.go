// Package http provides http transport for tasking manager reports
package http

import (
	stdhttp "net/http"
	"strconv"

	"galaxy/internal/modkit/httpkit"
	perr "galaxy/internal/platform/errors"
	"galaxy/internal/services/api/tasking/domain"
	svc "galaxy/internal/services/api/tasking/service"
)

// Register mounts tasking manager endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ValidatorsInput](r, "/validators", h.validators)
	httpkit.Get(r, "/teams", h.teams)
	httpkit.Get(r, "/teams/members", h.members)
}

type handlers struct{ svc svc.Service }

// @Summary Validator statistics
// @Description Tasks validated per validator, project and year; csv spreads years into columns
// @Tags Tasking manager
// @Accept json
// @Produce json,text/csv
// @Param payload body domain.ValidatorsInput true "Project filters"
// @Success 200 {array} domain.ValidatorStat "ok"
// @Router /tasking-manager/validators [post]
func (h *handlers) validators(r *stdhttp.Request, in domain.ValidatorsInput) (any, error) {
	stats, err := h.svc.Validators(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if in.OutputType != domain.FormatCSV {
		return stats, nil
	}
	body, err := svc.ValidatorsCSV(stats)
	if err != nil {
		return nil, err
	}
	return httpkit.CSV("validators.csv", body), nil
}

// @Summary Teams
// @Tags Tasking manager
// @Produce json
// @Success 200 {array} domain.Team "ok"
// @Router /tasking-manager/teams [get]
func (h *handlers) teams(r *stdhttp.Request) (any, error) {
	return h.svc.Teams(r.Context())
}

// @Summary Team members
// @Tags Tasking manager
// @Produce json
// @Param team_id query int false "Only members of this team"
// @Success 200 {array} domain.TeamMember "ok"
// @Router /tasking-manager/teams/members [get]
func (h *handlers) members(r *stdhttp.Request) (any, error) {
	var teamID int64
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, perr.WithField(perr.Validationf("team_id must be a positive integer"), "team_id")
		}
		teamID = id
	}
	return h.svc.TeamMembers(r.Context(), teamID)
}
