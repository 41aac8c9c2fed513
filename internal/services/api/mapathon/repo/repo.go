// Package repo provides postgres access for mapathon reports
package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
)

// Repo runs the planned mapathon statements; every method takes the plan it reads from
type Repo interface {
	MappedFeatures(ctx context.Context, p report.Plan) ([]FeatureRow, error)
	ContributorsCount(ctx context.Context, p report.Plan) (int64, error)
	UserFeatures(ctx context.Context, p report.Plan) ([]UserFeatureRow, error)
	Contributors(ctx context.Context, p report.Plan) ([]ContributorRow, error)
	TaskCounts(ctx context.Context, p report.Plan, name string) ([]TaskCountRow, error)
	TimeSpent(ctx context.Context, p report.Plan, name string) ([]TimeSpentRow, error)
	Changesets(ctx context.Context, p report.Plan) ([]ChangesetRow, error)
}

// FeatureRow is a feature and action total
type FeatureRow struct {
	Feature string
	Action  string
	Count   int64
}

// UserFeatureRow is a feature and action total of one user
type UserFeatureRow struct {
	Feature  string
	Action   string
	UserID   int64
	Username string
	Count    int64
}

// ContributorRow is a contributor with building total and editors
type ContributorRow struct {
	UserID         int64
	Username       string
	Editors        []string
	TotalBuildings int64
}

// TaskCountRow is a per user task count
type TaskCountRow struct {
	UserID int64
	Tasks  int64
}

// TimeSpentRow is a per user time total in seconds
type TimeSpentRow struct {
	UserID  int64
	Seconds float64
}

// ChangesetRow is a raw changeset header
type ChangesetRow struct {
	ChangesetID int64
	UserID      int64
	Username    string
	CreatedAt   time.Time
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) MappedFeatures(ctx context.Context, p report.Plan) ([]FeatureRow, error) {
	st, err := p.Must("mapped_features")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (FeatureRow, error) {
		var (
			fr    FeatureRow
			count *float64
		)
		if err := row.Scan(&fr.Feature, &fr.Action, &count); err != nil {
			return fr, err
		}
		fr.Count = mapping.Count(count)
		return fr, nil
	})
}

func (r *queries) ContributorsCount(ctx context.Context, p report.Plan) (int64, error) {
	st, err := p.Must("contributors_count")
	if err != nil {
		return 0, err
	}
	return repokit.Scalar[int64](ctx, r.q, st)
}

func (r *queries) UserFeatures(ctx context.Context, p report.Plan) ([]UserFeatureRow, error) {
	st, err := p.Must("mapped_features")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (UserFeatureRow, error) {
		var (
			ur    UserFeatureRow
			count *float64
		)
		if err := row.Scan(&ur.Feature, &ur.Action, &ur.UserID, &ur.Username, &count); err != nil {
			return ur, err
		}
		ur.Count = mapping.Count(count)
		return ur, nil
	})
}

func (r *queries) Contributors(ctx context.Context, p report.Plan) ([]ContributorRow, error) {
	st, err := p.Must("contributors")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (ContributorRow, error) {
		var (
			cr    ContributorRow
			total *float64
		)
		if err := row.Scan(&cr.UserID, &cr.Username, &cr.Editors, &total); err != nil {
			return cr, err
		}
		cr.TotalBuildings = mapping.Count(total)
		return cr, nil
	})
}

// TaskCounts reads tasks_mapped or tasks_validated
func (r *queries) TaskCounts(ctx context.Context, p report.Plan, name string) ([]TaskCountRow, error) {
	st, err := p.Must(name)
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (TaskCountRow, error) {
		var tr TaskCountRow
		err := row.Scan(&tr.UserID, &tr.Tasks)
		return tr, err
	})
}

// TimeSpent reads time_mapping or time_validating
func (r *queries) TimeSpent(ctx context.Context, p report.Plan, name string) ([]TimeSpentRow, error) {
	st, err := p.Must(name)
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (TimeSpentRow, error) {
		var (
			tr    TimeSpentRow
			spent pgtype.Interval
		)
		if err := row.Scan(&tr.UserID, &spent); err != nil {
			return tr, err
		}
		tr.Seconds = mapping.Seconds(spent)
		return tr, nil
	})
}

func (r *queries) Changesets(ctx context.Context, p report.Plan) ([]ChangesetRow, error) {
	st, err := p.Must("changesets")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (ChangesetRow, error) {
		var (
			cr   ChangesetRow
			name *string
		)
		if err := row.Scan(&cr.ChangesetID, &cr.UserID, &name, &cr.CreatedAt); err != nil {
			return cr, err
		}
		cr.Username = mapping.Zero(name)
		return cr, nil
	})
}
