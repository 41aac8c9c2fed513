// Package service contains tasking manager workflows
package service

import (
	"context"
	"strings"
	"time"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/services/api/tasking/domain"
	"galaxy/internal/services/api/tasking/repo"
)

// Service defines the tasking manager service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the tasking manager service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs a tasking manager service
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("tasking.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("tasking.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

// run builds spec and hands the plan and a bound repo to fn inside one snapshot
func (s *Svc) run(ctx context.Context, spec report.Spec, fn func(context.Context, report.Plan, repo.Repo) error) error {
	plan, err := report.Build(spec)
	if err != nil {
		return err
	}
	return repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		return fn(ctx, plan, rp)
	})
}

// Validators counts validated tasks per validator, project and year
func (s *Svc) Validators(ctx context.Context, in domain.ValidatorsInput) ([]domain.ValidatorStat, error) {
	spec, err := in.Spec()
	if err != nil {
		return nil, err
	}
	var rows []repo.ValidatorRow
	err = s.run(ctx, spec, func(ctx context.Context, p report.Plan, rp repo.Repo) error {
		rows, err = rp.Validators(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.ValidatorStat, 0, len(rows))
	for _, r := range rows {
		level, err := mapping.MappingLevel(r.MappingLevel)
		if err != nil {
			return nil, err
		}
		status, err := mapping.ProjectStatus(r.ProjectStatus)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ValidatorStat{
			UserID:                r.UserID,
			Username:              r.Username,
			MappingLevel:          level,
			ProjectID:             r.ProjectID,
			ProjectStatus:         status,
			Countries:             splitList(r.Countries),
			ProjectTasksMapped:    r.TasksMapped,
			ProjectTasksValidated: r.TasksValidated,
			Year:                  r.Year,
			Validated:             r.Validated,
		})
	}
	return out, nil
}

// Teams lists teams with managers and active member counts
func (s *Svc) Teams(ctx context.Context) ([]domain.Team, error) {
	out := []domain.Team{}
	err := s.run(ctx, report.Teams{}, func(ctx context.Context, p report.Plan, rp repo.Repo) error {
		rows, err := rp.Teams(ctx, p)
		for _, r := range rows {
			out = append(out, domain.Team{
				TeamID:           r.ID,
				OrganisationID:   r.OrganisationID,
				OrganisationName: r.OrganisationName,
				TeamName:         r.Name,
				Managers:         splitList(r.Managers),
				MembersCount:     r.MembersCount,
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TeamMembers lists memberships of one team, or of all teams when teamID is 0
func (s *Svc) TeamMembers(ctx context.Context, teamID int64) ([]domain.TeamMember, error) {
	var rows []repo.MemberRow
	err := s.run(ctx, report.TeamMembers{TeamID: teamID}, func(ctx context.Context, p report.Plan, rp repo.Repo) error {
		var err error
		rows, err = rp.Members(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.TeamMember, 0, len(rows))
	for _, r := range rows {
		fn, err := mapping.TeamFunction(r.Function)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TeamMember{
			TeamID:           r.TeamID,
			TeamName:         r.TeamName,
			OrganisationID:   r.OrganisationID,
			OrganisationName: r.OrganisationName,
			UserID:           r.UserID,
			Username:         r.Username,
			Function:         fn,
			Active:           r.Active,
		})
	}
	return out, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
