// Package service contains mapathon workflows
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"galaxy/internal/core/filter"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/services/api/mapathon/domain"
	"galaxy/internal/services/api/mapathon/repo"
)

// Service defines the mapathon service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the mapathon service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs a mapathon service; timeout bounds each report snapshot
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("mapathon.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("mapathon.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

func (s *Svc) snapshot(ctx context.Context, p report.Plan, fn func(context.Context, repo.Repo) error) error {
	return repokit.Snapshot(ctx, s.db, p.Source(), s.timeout, s.binder, fn)
}

// Summary returns the feature histogram and contributor count
func (s *Svc) Summary(ctx context.Context, in domain.Input) (domain.Summary, error) {
	r, tags, err := in.Filters()
	if err != nil {
		return domain.Summary{}, err
	}
	plan, err := report.Build(report.MapathonSummary{Range: r, Tags: tags})
	if err != nil {
		return domain.Summary{}, err
	}

	out := domain.Summary{MappedFeatures: []domain.MappedFeature{}}
	err = s.snapshot(ctx, plan, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.MappedFeatures(ctx, plan)
		if err != nil {
			return err
		}
		for _, fr := range rows {
			out.MappedFeatures = append(out.MappedFeatures, domain.MappedFeature(fr))
		}
		out.TotalContributors, err = rp.ContributorsCount(ctx, plan)
		return err
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return out, nil
}

// tmActivity is tasking manager activity keyed by user id
type tmActivity struct {
	mapped, validated map[int64]int64
	mapping, valid    map[int64]float64
}

// Detail returns per contributor totals joined with tasking manager activity
// the derived store and the tasking manager are read concurrently
func (s *Svc) Detail(ctx context.Context, in domain.Input) (domain.Detail, error) {
	r, tags, err := in.Filters()
	if err != nil {
		return domain.Detail{}, err
	}
	detail, err := report.Build(report.MapathonDetail{Range: r, Tags: tags})
	if err != nil {
		return domain.Detail{}, err
	}

	var (
		features     []repo.UserFeatureRow
		contributors []repo.ContributorRow
		tm           tmActivity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.snapshot(gctx, detail, func(ctx context.Context, rp repo.Repo) error {
			var err error
			if features, err = rp.UserFeatures(ctx, detail); err != nil {
				return err
			}
			contributors, err = rp.Contributors(ctx, detail)
			return err
		})
	})
	if ids := tags.ProjectIDsWithTags(); len(ids) > 0 {
		g.Go(func() error {
			var err error
			tm, err = s.taskActivity(gctx, r, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Detail{}, err
	}

	out := domain.Detail{
		MappedFeatures: make([]domain.UserFeature, 0, len(features)),
		Contributors:   make([]domain.Contributor, 0, len(contributors)),
	}
	for _, f := range features {
		out.MappedFeatures = append(out.MappedFeatures, domain.UserFeature(f))
	}
	for _, c := range contributors {
		editors := c.Editors
		if editors == nil {
			editors = []string{}
		}
		out.Contributors = append(out.Contributors, domain.Contributor{
			UserID:              c.UserID,
			Username:            c.Username,
			TotalBuildings:      c.TotalBuildings,
			Editors:             editors,
			TasksMapped:         tm.mapped[c.UserID],
			TasksValidated:      tm.validated[c.UserID],
			TimeSpentMapping:    tm.mapping[c.UserID],
			TimeSpentValidating: tm.valid[c.UserID],
		})
	}
	return out, nil
}

func (s *Svc) taskActivity(ctx context.Context, r filter.TimeRange, projectIDs []int64) (tmActivity, error) {
	plan, err := report.Build(report.TaskActivity{Range: r, ProjectIDs: projectIDs})
	if err != nil {
		return tmActivity{}, err
	}
	a := tmActivity{}
	err = s.snapshot(ctx, plan, func(ctx context.Context, rp repo.Repo) error {
		var err error
		if a.mapped, err = countsBy(ctx, rp, plan, "tasks_mapped"); err != nil {
			return err
		}
		if a.validated, err = countsBy(ctx, rp, plan, "tasks_validated"); err != nil {
			return err
		}
		if a.mapping, err = secondsBy(ctx, rp, plan, "time_mapping"); err != nil {
			return err
		}
		a.valid, err = secondsBy(ctx, rp, plan, "time_validating")
		return err
	})
	return a, err
}

func countsBy(ctx context.Context, rp repo.Repo, p report.Plan, name string) (map[int64]int64, error) {
	rows, err := rp.TaskCounts(ctx, p, name)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]int64, len(rows))
	for _, r := range rows {
		m[r.UserID] = r.Tasks
	}
	return m, nil
}

func secondsBy(ctx context.Context, rp repo.Repo, p report.Plan, name string) (map[int64]float64, error) {
	rows, err := rp.TimeSpent(ctx, p, name)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]float64, len(rows))
	for _, r := range rows {
		m[r.UserID] = r.Seconds
	}
	return m, nil
}

// Changesets lists raw changesets whose free text tags mention the hashtags
func (s *Svc) Changesets(ctx context.Context, in domain.Input) ([]domain.Changeset, error) {
	r, tags, err := in.Filters()
	if err != nil {
		return nil, err
	}
	plan, err := report.Build(report.Changesets{Range: r, Tags: tags})
	if err != nil {
		return nil, err
	}
	out := []domain.Changeset{}
	err = s.snapshot(ctx, plan, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.Changesets(ctx, plan)
		for _, c := range rows {
			out = append(out, domain.Changeset(c))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
