// Package repo provides postgres access for data recency
package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
)

// Repo runs the planned freshness statement
type Repo interface {
	Freshness(ctx context.Context, p report.Plan) (FreshnessRow, error)
}

// FreshnessRow is the newest timestamp and its distance to now; both are null on an empty table
type FreshnessRow struct {
	LastUpdated *time.Time
	Lag         pgtype.Interval
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

func (r *queries) Freshness(ctx context.Context, p report.Plan) (FreshnessRow, error) {
	st, err := p.Must("freshness")
	if err != nil {
		return FreshnessRow{}, err
	}
	rows, err := repokit.Many(ctx, r.q, st, func(row repokit.Row) (FreshnessRow, error) {
		var f FreshnessRow
		err := row.Scan(&f.LastUpdated, &f.Lag)
		return f, err
	})
	if err != nil || len(rows) == 0 {
		return FreshnessRow{}, err
	}
	return rows[0], nil
}
