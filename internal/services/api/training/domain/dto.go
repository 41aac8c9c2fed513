// Package domain holds DTOs for training events
package domain

import (
	"galaxy/internal/core/report"
	perr "galaxy/internal/platform/errors"
	ptime "galaxy/internal/platform/time"
)

// ListInput filters training events; every field is optional
type ListInput struct {
	FromDatestamp  ptime.Stamp `json:"from_datestamp" swaggertype:"string" example:"2021-01-01"`
	ToDatestamp    ptime.Stamp `json:"to_datestamp" swaggertype:"string" example:"2021-12-31"`
	OrganisationID int64       `json:"oid,omitempty" validate:"omitempty,gt=0" example:"4"`
	TopicTypes     []string    `json:"topic_type,omitempty" validate:"omitempty,max=3,dive,oneof=remote field other" example:"remote"`
	EventType      string      `json:"event_type,omitempty" validate:"omitempty,oneof=virtual inperson" example:"virtual"`
}

// Spec converts the request into report form
func (in ListInput) Spec() (report.Trainings, error) {
	from, to := in.FromDatestamp.Time, in.ToDatestamp.Time
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return report.Trainings{}, perr.WithField(perr.Validationf("to_datestamp must not be before from_datestamp"), "to_datestamp")
	}
	return report.Trainings{
		From:           from,
		To:             to,
		OrganisationID: in.OrganisationID,
		TopicTypes:     in.TopicTypes,
		EventType:      in.EventType,
	}, nil
}

// Organisation runs trainings
type Organisation struct {
	ID   int64  `json:"oid" example:"4"`
	Name string `json:"name" example:"Kathmandu Living Labs"`
}

// Training is one training event
type Training struct {
	ID           int64  `json:"tid" example:"12"`
	Name         string `json:"name" example:"JOSM basics"`
	Location     string `json:"location" example:"Kathmandu"`
	Organization string `json:"organization" example:"Kathmandu Living Labs"`
	EventType    string `json:"eventtype" example:"inperson"`
	TopicType    string `json:"topictype" example:"field"`
	Topics       string `json:"topics" example:"field papers"`
	Hours        int64  `json:"hours" example:"4"`
	Date         string `json:"date" example:"2021-03-02"`
}
