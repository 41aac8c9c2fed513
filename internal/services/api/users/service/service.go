// Package service contains osm user workflows
package service

import (
	"context"
	"time"

	"galaxy/internal/core/filter"
	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/services/api/users/domain"
	"galaxy/internal/services/api/users/repo"
)

// Service defines the users service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the users service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs a users service
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("users.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("users.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

// List resolves usernames that edited inside the window
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.User, error) {
	r := filter.TimeRange{From: in.FromTimestamp.Time, To: in.ToTimestamp.Time}
	if err := r.Validate(domain.MaxSpan); err != nil {
		return nil, err
	}
	plan, err := report.Build(report.UserList{Range: r, Usernames: in.Usernames})
	if err != nil {
		return nil, err
	}
	out := []domain.User{}
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.Users(ctx, plan)
		for _, u := range rows {
			out = append(out, domain.User(u))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Statistics totals one user's building and highway edits
func (s *Svc) Statistics(ctx context.Context, in domain.StatisticsInput) (domain.Statistics, error) {
	r, err := in.Range()
	if err != nil {
		return domain.Statistics{}, err
	}
	tags := filter.HashtagSet{Hashtags: in.Hashtags, ProjectIDs: in.ProjectIDs}
	if err := tags.Validate(); err != nil {
		return domain.Statistics{}, err
	}
	plan, err := report.Build(report.UserStatistics{Range: r, UserID: in.UserID, Tags: tags})
	if err != nil {
		return domain.Statistics{}, err
	}
	var row repo.StatisticsRow
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		var err error
		row, err = rp.Statistics(ctx, plan)
		return err
	})
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.Statistics{
		AddedBuildings:    row.AddedBuildings,
		ModifiedBuildings: row.ModifiedBuildings,
		AddedHighway:      row.AddedHighway,
		ModifiedHighway:   row.ModifiedHighway,
		AddedHighwayKm:    mapping.MetersToKm(row.AddedHighwayM),
		ModifiedHighwayKm: mapping.MetersToKm(row.ModifiedHighwayM),
	}, nil
}
