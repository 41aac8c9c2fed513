// Package domain holds DTOs for data quality http and service contracts
package domain

import (
	"encoding/json"
	"time"

	"galaxy/internal/core/filter"
	"galaxy/internal/core/report"
	perr "galaxy/internal/platform/errors"
	ptime "galaxy/internal/platform/time"
)

// window limits per report family
const (
	MaxHashtagSpan  = 24 * time.Hour
	MaxUsernameSpan = filter.Month
)

// Output formats of the issue reports
const (
	FormatGeoJSON = "geojson"
	FormatCSV     = "csv"
)

// HashtagFilters selects validated features by hashtag and/or area
// hashtags are matched exactly; either hashtags or a geometry is required
type HashtagFilters struct {
	FromTimestamp ptime.Stamp     `json:"from_timestamp" validate:"required" swaggertype:"string" example:"2021-07-01T00:00:00Z"`
	ToTimestamp   ptime.Stamp     `json:"to_timestamp" validate:"required" swaggertype:"string" example:"2021-07-01T12:00:00Z"`
	Hashtags      []string        `json:"hashtags,omitempty" validate:"omitempty,max=100,dive,required,max=256" example:"missingmaps"`
	IssueTypes    []string        `json:"issue_type" validate:"required,min=1,dive,required" example:"badgeom,badvalue"`
	Geometry      json.RawMessage `json:"geometry,omitempty" swaggertype:"object"`
}

// HashtagInput is a hashtag issue report request
type HashtagInput struct {
	HashtagFilters
	OutputType string `json:"output_type" validate:"required,oneof=geojson csv" example:"geojson"`
}

// HashtagSpec is the validated filter set of a hashtag report
type HashtagSpec struct {
	Range    filter.TimeRange
	Hashtags []string
	Issues   []report.IssueType
	Geometry *filter.Geometry
}

// Validate checks window, issue names and the area of interest
func (in HashtagFilters) Validate() (HashtagSpec, error) {
	r := filter.TimeRange{From: in.FromTimestamp.Time, To: in.ToTimestamp.Time}
	if err := r.Validate(MaxHashtagSpan); err != nil {
		return HashtagSpec{}, err
	}
	issues, err := report.ParseIssueTypes(in.IssueTypes)
	if err != nil {
		return HashtagSpec{}, err
	}
	var geom *filter.Geometry
	if len(in.Geometry) > 0 && string(in.Geometry) != "null" {
		if geom, err = filter.ParseGeoJSON(in.Geometry); err != nil {
			return HashtagSpec{}, err
		}
		if err := geom.ValidateArea(filter.MaxAreaKm2); err != nil {
			return HashtagSpec{}, err
		}
	}
	if geom == nil && len(in.Hashtags) == 0 {
		return HashtagSpec{}, perr.WithField(perr.Validationf("geometry and hashtags fields not provided"), "geometry")
	}
	if err := (filter.HashtagSet{Hashtags: in.Hashtags}).Validate(); err != nil {
		return HashtagSpec{}, err
	}
	return HashtagSpec{Range: r, Hashtags: in.Hashtags, Issues: issues, Geometry: geom}, nil
}

// UsernameInput selects validated features edited by some users
type UsernameInput struct {
	FromTimestamp ptime.Stamp `json:"from_timestamp" validate:"required" swaggertype:"string" example:"2021-07-01"`
	ToTimestamp   ptime.Stamp `json:"to_timestamp" validate:"required" swaggertype:"string" example:"2021-07-15"`
	OsmUsernames  []string    `json:"osm_usernames" validate:"required,min=1,max=100,dive,required" example:"zoe"`
	Hashtags      []string    `json:"hashtags,omitempty" validate:"omitempty,dive,required" example:"missingmaps"`
	ProjectIDs    []int64     `json:"project_ids,omitempty" validate:"omitempty,dive,gt=0" example:"11224"`
	IssueTypes    []string    `json:"issue_types" validate:"required,min=1,dive,required" example:"all"`
	OutputType    string      `json:"output_type" validate:"required,oneof=geojson csv" example:"csv"`
}

// ProjectInput selects validated features inside tasking manager projects
type ProjectInput struct {
	ProjectIDs []int64  `json:"project_ids" validate:"required,min=1,max=100,dive,gt=0" example:"11224"`
	IssueTypes []string `json:"issue_types" validate:"required,min=1,dive,required" example:"badgeom"`
	OutputType string   `json:"output_type" validate:"required,oneof=geojson csv" example:"geojson"`
}

// Issue is one flagged feature; Username and Values are only set by the reports that read them
type Issue struct {
	OsmID              int64     `json:"osm_id"`
	ChangesetID        int64     `json:"changeset_id"`
	ChangesetTimestamp time.Time `json:"changeset_timestamp"`
	Username           string    `json:"username,omitempty"`
	IssueTypes         []string  `json:"issue_type"`
	Values             []string  `json:"values,omitempty" csv:"-"`
	Lat                float64   `json:"lat" csv:"latitude"`
	Lon                float64   `json:"lon" csv:"longitude"`
}

// SummaryRow counts flagged values per validation source
type SummaryRow struct {
	Value  string `json:"value" example:"building=yes"`
	Source string `json:"source" example:"underpass"`
	Count  int64  `json:"count" example:"18"`
}

// Document is a rendered issue report
type Document struct {
	Format   string
	Filename string
	Body     []byte
}
