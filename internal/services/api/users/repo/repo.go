// Package repo provides postgres access for osm users
package repo

import (
	"context"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
)

// Repo runs the planned user statements
type Repo interface {
	Users(ctx context.Context, p report.Plan) ([]UserRow, error)
	Statistics(ctx context.Context, p report.Plan) (StatisticsRow, error)
}

// UserRow is one resolved username
type UserRow struct {
	UserID   int64
	Username string
}

// StatisticsRow holds summed counts; highway lengths are in meters
type StatisticsRow struct {
	AddedBuildings    int64
	ModifiedBuildings int64
	AddedHighway      int64
	ModifiedHighway   int64
	AddedHighwayM     float64
	ModifiedHighwayM  float64
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

func (r *queries) Users(ctx context.Context, p report.Plan) ([]UserRow, error) {
	st, err := p.Must("users")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (UserRow, error) {
		var u UserRow
		err := row.Scan(&u.UserID, &u.Username)
		return u, err
	})
}

func (r *queries) Statistics(ctx context.Context, p report.Plan) (StatisticsRow, error) {
	st, err := p.Must("statistics")
	if err != nil {
		return StatisticsRow{}, err
	}
	rows, err := repokit.Many(ctx, r.q, st, func(row repokit.Row) (StatisticsRow, error) {
		var ab, mb, ah, mh, ahm, mhm *float64
		if err := row.Scan(&ab, &mb, &ah, &mh, &ahm, &mhm); err != nil {
			return StatisticsRow{}, err
		}
		return StatisticsRow{
			AddedBuildings:    mapping.Count(ab),
			ModifiedBuildings: mapping.Count(mb),
			AddedHighway:      mapping.Count(ah),
			ModifiedHighway:   mapping.Count(mh),
			AddedHighwayM:     mapping.Zero(ahm),
			ModifiedHighwayM:  mapping.Zero(mhm),
		}, nil
	})
	if err != nil || len(rows) == 0 {
		return StatisticsRow{}, err
	}
	return rows[0], nil
}
