package report

import (
	"time"

	"galaxy/internal/core/filter"
)

// TrainingOrganisations lists organisations that run trainings
type TrainingOrganisations struct{}

func (TrainingOrganisations) Kind() Kind { return KindTrainingOrganisations }

func (s TrainingOrganisations) statements() ([]statement, error) {
	q := psql.Select("oid", "name").
		From("organizations").
		OrderBy(s.Kind().Ordering().terms("", "oid")...)
	return []statement{{"organisations", q}}, nil
}

// Trainings lists training events; every filter is optional
type Trainings struct {
	From           time.Time
	To             time.Time
	OrganisationID int64
	TopicTypes     []string
	EventType      string
}

func (Trainings) Kind() Kind { return KindTrainings }

func (s Trainings) statements() ([]statement, error) {
	var org, event filter.Fragment
	if s.OrganisationID > 0 {
		org = filter.Equal("t.organization", s.OrganisationID)
	}
	if s.EventType != "" {
		event = filter.Equal("t.eventtype", s.EventType)
	}
	q := where(
		psql.Select("t.tid", "t.name", "t.location", "o.name AS organization", "t.eventtype", "t.topictype",
			"t.topics", "t.hours", "t.date").
			From("training t").
			Join("organizations o ON o.oid = t.organization"),
		filter.And(
			org,
			filter.In("t.topictype", s.TopicTypes),
			event,
			filter.Since("t.date", s.From),
			filter.Until("t.date", s.To),
		),
	).OrderBy(s.Kind().Ordering().terms("", "t.date", "t.tid")...)
	return []statement{{"trainings", q}}, nil
}
