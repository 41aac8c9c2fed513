// Package domain holds DTOs for osm user lookups and statistics
package domain

import (
	"galaxy/internal/core/filter"
	ptime "galaxy/internal/platform/time"
)

// MaxSpan bounds the window of user lookups and statistics
const MaxSpan = filter.Month

// ListInput resolves usernames active inside a window to osm ids
type ListInput struct {
	FromTimestamp ptime.Stamp `json:"from_timestamp" validate:"required" swaggertype:"string" example:"2021-07-01"`
	ToTimestamp   ptime.Stamp `json:"to_timestamp" validate:"required" swaggertype:"string" example:"2021-07-20"`
	Usernames     []string    `json:"user_names" validate:"required,min=1,max=500,dive,required,max=255" example:"zoe"`
}

// StatisticsInput asks for one user's totals inside a window
type StatisticsInput struct {
	FromTimestamp ptime.Stamp `json:"from_timestamp" validate:"required" swaggertype:"string" example:"2021-07-01"`
	ToTimestamp   ptime.Stamp `json:"to_timestamp" validate:"required" swaggertype:"string" example:"2021-07-20"`
	UserID        int64       `json:"user_id" validate:"required,gt=0" example:"11593794"`
	Hashtags      []string    `json:"hashtags,omitempty" validate:"omitempty,max=100,dive,required,max=256" example:"missingmaps"`
	ProjectIDs    []int64     `json:"project_ids,omitempty" validate:"omitempty,max=100,dive,gt=0" example:"11224"`
}

// Range returns the validated window
func (in StatisticsInput) Range() (filter.TimeRange, error) {
	r := filter.TimeRange{From: in.FromTimestamp.Time, To: in.ToTimestamp.Time}
	return r, r.Validate(MaxSpan)
}

// User is one username with its osm id
type User struct {
	UserID   int64  `json:"user_id" example:"11593794"`
	Username string `json:"username" example:"zoe"`
}

// Statistics are one user's building and highway edit totals
type Statistics struct {
	AddedBuildings    int64   `json:"added_buildings" example:"120"`
	ModifiedBuildings int64   `json:"modified_buildings" example:"14"`
	AddedHighway      int64   `json:"added_highway" example:"9"`
	ModifiedHighway   int64   `json:"modified_highway" example:"3"`
	AddedHighwayKm    float64 `json:"added_highway_km" example:"4.2"`
	ModifiedHighwayKm float64 `json:"modified_highway_km" example:"0.8"`
}
