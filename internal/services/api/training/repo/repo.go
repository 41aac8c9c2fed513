// Package repo provides postgres access for training events
package repo

import (
	"context"
	"time"

	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
)

// Repo runs the planned training statements
type Repo interface {
	Organisations(ctx context.Context, p report.Plan) ([]OrganisationRow, error)
	Trainings(ctx context.Context, p report.Plan) ([]TrainingRow, error)
}

// OrganisationRow is one training organisation
type OrganisationRow struct {
	ID   int64
	Name string
}

// TrainingRow is one training event with nulls coalesced
type TrainingRow struct {
	ID           int64
	Name         string
	Location     string
	Organization string
	EventType    string
	TopicType    string
	Topics       string
	Hours        int64
	Date         time.Time
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

func (r *queries) Organisations(ctx context.Context, p report.Plan) ([]OrganisationRow, error) {
	st, err := p.Must("organisations")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (OrganisationRow, error) {
		var o OrganisationRow
		err := row.Scan(&o.ID, &o.Name)
		return o, err
	})
}

func (r *queries) Trainings(ctx context.Context, p report.Plan) ([]TrainingRow, error) {
	st, err := p.Must("trainings")
	if err != nil {
		return nil, err
	}
	return repokit.Many(ctx, r.q, st, func(row repokit.Row) (TrainingRow, error) {
		var (
			t                                  TrainingRow
			location, event, topicType, topics *string
			hours                              *int64
		)
		err := row.Scan(&t.ID, &t.Name, &location, &t.Organization, &event, &topicType, &topics, &hours, &t.Date)
		t.Location = mapping.Zero(location)
		t.EventType = mapping.Zero(event)
		t.TopicType = mapping.Zero(topicType)
		t.Topics = mapping.Zero(topics)
		t.Hours = mapping.Zero(hours)
		return t, err
	})
}
