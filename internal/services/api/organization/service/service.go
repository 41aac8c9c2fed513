// Package service contains organization statistics workflows
package service

import (
	"context"
	"time"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/services/api/organization/domain"
	"galaxy/internal/services/api/organization/repo"
)

// Service defines the organization service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the organization service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs an organization service
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("organization.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("organization.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

// Hashtags totals each hashtag's edits per week, month, quarter or year
func (s *Svc) Hashtags(ctx context.Context, in domain.HashtagInput) ([]domain.HashtagBucket, error) {
	spec, err := in.Spec()
	if err != nil {
		return nil, err
	}
	plan, err := report.Build(spec)
	if err != nil {
		return nil, err
	}

	out := []domain.HashtagBucket{}
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.Buckets(ctx, plan)
		if err != nil {
			return err
		}
		for _, r := range rows {
			start := r.BucketStart.UTC()
			out = append(out, domain.HashtagBucket{
				Hashtag:   r.Hashtag,
				Frequency: string(spec.Frequency),
				StartDate: start.Format(time.DateOnly),
				// last day inside the bucket
				EndDate:                 spec.Frequency.BucketEnd(start).AddDate(0, 0, -1).Format(time.DateOnly),
				TotalNewBuildings:       r.Buildings,
				TotalUniqueContributors: r.Contributors,
				TotalNewRoadKm:          mapping.MetersToKm(r.RoadMeters),
				TotalNewAmenities:       r.Amenities,
				TotalNewPlaces:          r.Places,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
