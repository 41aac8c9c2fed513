// Package repo provides postgres access for tasking manager reports
package repo

import (
	"context"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
)

// Repo runs the planned tasking manager statements
type Repo interface {
	Validators(ctx context.Context, p report.Plan) ([]ValidatorRow, error)
	Teams(ctx context.Context, p report.Plan) ([]TeamRow, error)
	Members(ctx context.Context, p report.Plan) ([]MemberRow, error)
}

// ValidatorRow carries raw codes; decoding happens in the service
type ValidatorRow struct {
	UserID         int64
	Username       string
	MappingLevel   int
	ProjectID      int64
	ProjectStatus  int
	Countries      string
	TasksMapped    int64
	TasksValidated int64
	Year           int
	Validated      int64
}

// TeamRow is one team; managers are comma joined
type TeamRow struct {
	ID               int64
	OrganisationID   int64
	OrganisationName string
	Name             string
	Managers         string
	MembersCount     int64
}

// MemberRow is one team membership with a raw function code
type MemberRow struct {
	TeamID           int64
	TeamName         string
	OrganisationID   int64
	OrganisationName string
	UserID           int64
	Username         string
	Function         int
	Active           bool
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

func (r *queries) Validators(ctx context.Context, p report.Plan) ([]ValidatorRow, error) {
	st, err := p.Must("validators")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (ValidatorRow, error) {
		var (
			v                 ValidatorRow
			mapped, validated *int64
			countries         *string
		)
		err := row.Scan(&v.UserID, &v.Username, &v.MappingLevel, &v.ProjectID, &v.ProjectStatus,
			&countries, &mapped, &validated, &v.Year, &v.Validated)
		v.Countries = mapping.Zero(countries)
		v.TasksMapped = mapping.Zero(mapped)
		v.TasksValidated = mapping.Zero(validated)
		return v, err
	})
}

func (r *queries) Teams(ctx context.Context, p report.Plan) ([]TeamRow, error) {
	st, err := p.Must("teams")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (TeamRow, error) {
		var (
			t        TeamRow
			managers *string
			members  *int64
		)
		err := row.Scan(&t.ID, &t.OrganisationID, &t.OrganisationName, &t.Name, &managers, &members)
		t.Managers = mapping.Zero(managers)
		t.MembersCount = mapping.Zero(members)
		return t, err
	})
}

func (r *queries) Members(ctx context.Context, p report.Plan) ([]MemberRow, error) {
	st, err := p.Must("members")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (MemberRow, error) {
		var m MemberRow
		err := row.Scan(&m.TeamID, &m.TeamName, &m.OrganisationID, &m.OrganisationName,
			&m.UserID, &m.Username, &m.Function, &m.Active)
		return m, err
	})
}
