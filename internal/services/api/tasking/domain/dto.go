// Package domain holds DTOs for tasking manager reports
package domain

import (
	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	perr "galaxy/internal/platform/errors"
)

// Output formats of the validator report
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// FirstYear is the default lower bound of project creation years
const FirstYear = 2012

// ValidatorsInput filters validator statistics by project
type ValidatorsInput struct {
	// Year keeps projects created after this year
	Year         int    `json:"year" validate:"omitempty,gte=2000,lte=2100" example:"2012"`
	Country      string `json:"country,omitempty" validate:"omitempty,max=128" example:"Nepal"`
	Organisation string `json:"organisation,omitempty" validate:"omitempty,max=256" example:"HOT"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=archived published draft" example:"published"`
	OutputType   string `json:"output_type" validate:"omitempty,oneof=json csv" example:"json"`
}

// Spec converts the request into report form
func (in ValidatorsInput) Spec() (report.ValidatorStats, error) {
	s := report.ValidatorStats{AfterYear: in.Year, Country: in.Country, Organisation: in.Organisation}
	if s.AfterYear == 0 {
		s.AfterYear = FirstYear
	}
	if in.Status != "" {
		code, ok := mapping.ProjectStatusCode(in.Status)
		if !ok {
			return s, perr.WithField(perr.Validationf("unknown project status %q", in.Status), "status")
		}
		s.Status = &code
	}
	return s, nil
}

// ValidatorStat is how many tasks a validator validated in one project during one year
type ValidatorStat struct {
	UserID                int64    `json:"user_id" example:"360183"`
	Username              string   `json:"username" example:"zoe"`
	MappingLevel          string   `json:"mapping_level" example:"advanced"`
	ProjectID             int64    `json:"project_id" example:"11224"`
	ProjectStatus         string   `json:"project_status" example:"published"`
	Countries             []string `json:"countries" example:"Nepal"`
	ProjectTasksMapped    int64    `json:"project_tasks_mapped" example:"120"`
	ProjectTasksValidated int64    `json:"project_tasks_validated" example:"80"`
	Year                  int      `json:"year" example:"2021"`
	Validated             int64    `json:"validated" example:"14"`
}

// Team is a tasking manager team with its managers
type Team struct {
	TeamID           int64    `json:"team_id" example:"7"`
	OrganisationID   int64    `json:"organisation_id" example:"3"`
	OrganisationName string   `json:"organisation_name" example:"HOT"`
	TeamName         string   `json:"team_name" example:"Validators"`
	Managers         []string `json:"managers" example:"zoe"`
	MembersCount     int64    `json:"members_count" example:"12"`
}

// TeamMember is one user's membership in a team
type TeamMember struct {
	TeamID           int64  `json:"team_id" example:"7"`
	TeamName         string `json:"team_name" example:"Validators"`
	OrganisationID   int64  `json:"organisation_id" example:"3"`
	OrganisationName string `json:"organisation_name" example:"HOT"`
	UserID           int64  `json:"user_id" example:"360183"`
	Username         string `json:"username" example:"zoe"`
	Function         string `json:"function" example:"manager"`
	Active           bool   `json:"active" example:"true"`
}
