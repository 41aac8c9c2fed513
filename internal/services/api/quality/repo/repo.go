// Package repo provides postgres access for data quality reports
package repo

import (
	"context"
	"time"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	perr "galaxy/internal/platform/errors"
)

// Repo runs the planned data quality statements
type Repo interface {
	// Issues reads the "issues" statement of any issue report kind
	Issues(ctx context.Context, p report.Plan) ([]IssueRow, error)
	Summary(ctx context.Context, p report.Plan) ([]SummaryRow, error)
}

// IssueRow is one flagged feature; Username and Values depend on the report kind
type IssueRow struct {
	OsmID       int64
	ChangesetID int64
	Timestamp   time.Time
	Username    string
	Values      []string
	Lat         float64
	Lon         float64
	Issues      []string
}

// SummaryRow is a flagged value count per validation source
type SummaryRow struct {
	Value  string
	Source string
	Count  int64
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

// column order of the "issues" statement per kind
var issueScanners = map[report.Kind]func(repokit.Row) (IssueRow, error){
	report.KindQualityByHashtag: func(row repokit.Row) (IssueRow, error) {
		var ir IssueRow
		err := row.Scan(&ir.OsmID, &ir.ChangesetID, &ir.Values, &ir.Lat, &ir.Lon, &ir.Timestamp, &ir.Issues)
		return ir, err
	},
	report.KindQualityByUsername: func(row repokit.Row) (IssueRow, error) {
		var (
			ir   IssueRow
			name *string
		)
		err := row.Scan(&ir.OsmID, &ir.ChangesetID, &name, &ir.Timestamp, &ir.Lat, &ir.Lon, &ir.Issues)
		ir.Username = mapping.Zero(name)
		return ir, err
	},
	report.KindQualityByProject: func(row repokit.Row) (IssueRow, error) {
		var ir IssueRow
		err := row.Scan(&ir.OsmID, &ir.ChangesetID, &ir.Timestamp, &ir.Lat, &ir.Lon, &ir.Issues)
		return ir, err
	},
}

func (r *queries) Issues(ctx context.Context, p report.Plan) ([]IssueRow, error) {
	scan, ok := issueScanners[p.Kind]
	if !ok {
		return nil, perr.QueryBuildf("%s is not an issue report", p.Kind)
	}
	st, err := p.Must("issues")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, scan)
}

func (r *queries) Summary(ctx context.Context, p report.Plan) ([]SummaryRow, error) {
	st, err := p.Must("summary")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (SummaryRow, error) {
		var (
			sr     SummaryRow
			source *string
		)
		err := row.Scan(&sr.Value, &source, &sr.Count)
		sr.Source = mapping.Zero(source)
		return sr, err
	})
}
