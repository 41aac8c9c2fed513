// Package repo provides postgres access for organization statistics
package repo

import (
	"context"
	"time"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
)

// Repo runs the planned organization statements
type Repo interface {
	Buckets(ctx context.Context, p report.Plan) ([]BucketRow, error)
}

// BucketRow is one hashtag and bucket total; road length is in meters
type BucketRow struct {
	Hashtag      string
	BucketStart  time.Time
	Contributors int64
	Buildings    int64
	Amenities    int64
	Places       int64
	RoadMeters   float64
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

func (r *queries) Buckets(ctx context.Context, p report.Plan) ([]BucketRow, error) {
	st, err := p.Must("buckets")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (BucketRow, error) {
		var (
			br                                    BucketRow
			buildings, amenities, places, roadsM *float64
		)
		if err := row.Scan(&br.Hashtag, &br.BucketStart, &br.Contributors, &buildings, &amenities, &places, &roadsM); err != nil {
			return br, err
		}
		br.Buildings = mapping.Count(buildings)
		br.Amenities = mapping.Count(amenities)
		br.Places = mapping.Count(places)
		br.RoadMeters = mapping.Zero(roadsM)
		return br, nil
	})
}
