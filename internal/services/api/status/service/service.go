// Package service reports data recency
package service

import (
	"context"
	"time"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/services/api/status/domain"
	"galaxy/internal/services/api/status/repo"
)

// Service defines the status service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the status service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs a status service
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("status.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("status.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

// Freshness reports the newest row of the target table and its lag
func (s *Svc) Freshness(ctx context.Context, target string) (domain.Freshness, error) {
	t, err := report.ParseFreshnessTarget(target)
	if err != nil {
		return domain.Freshness{}, err
	}
	plan, err := report.Build(report.Freshness{Target: t})
	if err != nil {
		return domain.Freshness{}, err
	}
	var row repo.FreshnessRow
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		var err error
		row, err = rp.Freshness(ctx, plan)
		return err
	})
	if err != nil {
		return domain.Freshness{}, err
	}
	out := domain.Freshness{Target: string(t), LagSeconds: mapping.Seconds(row.Lag)}
	if row.LastUpdated != nil {
		at := row.LastUpdated.UTC()
		out.LastUpdated = &at
	}
	return out, nil
}
