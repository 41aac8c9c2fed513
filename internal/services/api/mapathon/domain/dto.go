// Package domain holds DTOs for mapathon http and service contracts
package domain

import (
	"time"

	"galaxy/internal/core/filter"
	perr "galaxy/internal/platform/errors"
	ptime "galaxy/internal/platform/time"
)

// MaxSpan is the widest window a mapathon report may cover
const MaxSpan = 24 * time.Hour

// Input selects the changesets of a mapathon
// at least one hashtag or project id is required
type Input struct {
	FromTimestamp ptime.Stamp `json:"from_timestamp" validate:"required" swaggertype:"string" example:"2021-08-27T09:00:00Z"`
	ToTimestamp   ptime.Stamp `json:"to_timestamp" validate:"required" swaggertype:"string" example:"2021-08-27T11:00:00Z"`
	ProjectIDs    []int64     `json:"project_ids" validate:"omitempty,max=100,dive,gt=0" example:"11224,10042"`
	Hashtags      []string    `json:"hashtags" validate:"omitempty,max=100,dive,required,max=256" example:"mapandchathour2021"`
}

// Filters checks the window and the hashtag set and returns them in filter form
func (in Input) Filters() (filter.TimeRange, filter.HashtagSet, error) {
	r := filter.TimeRange{From: in.FromTimestamp.Time, To: in.ToTimestamp.Time}
	if err := r.Validate(MaxSpan); err != nil {
		return filter.TimeRange{}, filter.HashtagSet{}, err
	}
	tags := filter.HashtagSet{Hashtags: in.Hashtags, ProjectIDs: in.ProjectIDs}
	if tags.Empty() {
		return filter.TimeRange{}, filter.HashtagSet{}, perr.WithField(
			perr.Validationf("empty lists found for both hashtags and project_ids"), "hashtags")
	}
	if err := tags.Validate(); err != nil {
		return filter.TimeRange{}, filter.HashtagSet{}, err
	}
	return r, tags, nil
}

// MappedFeature is one feature and action total
type MappedFeature struct {
	Feature string `json:"feature" example:"building"`
	Action  string `json:"action" example:"create"`
	Count   int64  `json:"count" example:"210"`
}

// Summary is the feature histogram and contributor count of a mapathon
type Summary struct {
	TotalContributors int64           `json:"total_contributors" example:"34"`
	MappedFeatures    []MappedFeature `json:"mapped_features"`
}

// UserFeature is a feature and action total of one contributor
type UserFeature struct {
	Feature  string `json:"feature" example:"highway"`
	Action   string `json:"action" example:"modify"`
	UserID   int64  `json:"user_id" example:"4589"`
	Username string `json:"username" example:"zoe"`
	Count    int64  `json:"count" example:"12"`
}

// Contributor is one mapper of the mapathon with their tasking manager activity
// tasking manager values are 0 when the user has no activity on the projects
type Contributor struct {
	UserID              int64    `json:"user_id" example:"4589"`
	Username            string   `json:"username" example:"zoe"`
	TotalBuildings      int64    `json:"total_buildings" example:"87"`
	Editors             []string `json:"editors" example:"JOSM/1.5,iD 2.20.2"`
	TasksMapped         int64    `json:"tasks_mapped" example:"6"`
	TasksValidated      int64    `json:"tasks_validated" example:"0"`
	TimeSpentMapping    float64  `json:"time_spent_mapping" example:"5400"`
	TimeSpentValidating float64  `json:"time_spent_validating" example:"0"`
}

// Detail breaks a mapathon down per contributor
type Detail struct {
	MappedFeatures []UserFeature `json:"mapped_features"`
	Contributors   []Contributor `json:"contributors"`
}

// Changeset is one raw changeset matched by a hashtag
type Changeset struct {
	ChangesetID int64     `json:"changeset_id" example:"110238472"`
	UserID      int64     `json:"user_id" example:"4589"`
	Username    string    `json:"username" example:"zoe"`
	CreatedAt   time.Time `json:"created_at" example:"2021-08-27T09:12:44Z"`
}
