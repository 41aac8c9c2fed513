// Package service contains training workflows
package service

import (
	"context"
	"time"

	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/services/api/training/domain"
	"galaxy/internal/services/api/training/repo"
)

// Service defines the training service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the training service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs a training service
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("training.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("training.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

// Organisations lists organisations that run trainings
func (s *Svc) Organisations(ctx context.Context) ([]domain.Organisation, error) {
	plan, err := report.Build(report.TrainingOrganisations{})
	if err != nil {
		return nil, err
	}
	out := []domain.Organisation{}
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.Organisations(ctx, plan)
		for _, o := range rows {
			out = append(out, domain.Organisation(o))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns trainings matching the optional filters, oldest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Training, error) {
	spec, err := in.Spec()
	if err != nil {
		return nil, err
	}
	plan, err := report.Build(spec)
	if err != nil {
		return nil, err
	}
	out := []domain.Training{}
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.Trainings(ctx, plan)
		for _, t := range rows {
			out = append(out, domain.Training{
				ID:           t.ID,
				Name:         t.Name,
				Location:     t.Location,
				Organization: t.Organization,
				EventType:    t.EventType,
				TopicType:    t.TopicType,
				Topics:       t.Topics,
				Hours:        t.Hours,
				Date:         t.Date.Format(time.DateOnly),
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
