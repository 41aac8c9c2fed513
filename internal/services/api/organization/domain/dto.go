// Package domain holds DTOs for organization statistics
package domain

import (
	"regexp"
	"strings"

	"galaxy/internal/core/report"
	perr "galaxy/internal/platform/errors"
	ptime "galaxy/internal/platform/time"
)

// Output formats of the organization report
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// hashtags of an organization are bare words
var specialChars = regexp.MustCompile(`[@!#$%^&*() <>?/\\|}{~:,"]`)

// HashtagInput asks for per bucket totals of organization hashtags
// start_date and end_date are optional; when both are set end_date must be at least
// the frequency's minimum span after start_date. Hashtags match lowercase
type HashtagInput struct {
	Hashtags   []string    `json:"hashtags" validate:"required,min=1,max=50,dive,required" example:"hotosm"`
	Frequency  string      `json:"frequency" validate:"required,oneof=w m q y" example:"m"`
	OutputType string      `json:"output_type" validate:"required,oneof=json csv" example:"json"`
	StartDate  ptime.Stamp `json:"start_date" swaggertype:"string" example:"2021-01-01"`
	EndDate    ptime.Stamp `json:"end_date" swaggertype:"string" example:"2021-06-30"`
}

// Spec validates the request into report form
func (in HashtagInput) Spec() (report.OrganizationHashtag, error) {
	tags := make([]string, 0, len(in.Hashtags))
	for _, h := range in.Hashtags {
		h = strings.ToLower(strings.TrimSpace(h))
		if len(h) < 2 {
			return report.OrganizationHashtag{}, perr.WithField(perr.Validationf("hashtag %q is too short", h), "hashtags")
		}
		if specialChars.MatchString(h) {
			return report.OrganizationHashtag{}, perr.WithField(
				perr.Validationf("hashtag %q contains a special character or space", h), "hashtags")
		}
		tags = append(tags, h)
	}
	f, err := report.ParseFrequency(in.Frequency)
	if err != nil {
		return report.OrganizationHashtag{}, err
	}
	start, end := in.StartDate.Time, in.EndDate.Time
	if !start.IsZero() && !end.IsZero() {
		if end.Before(start) {
			return report.OrganizationHashtag{}, perr.WithField(perr.Validationf("end_date must not be before start_date"), "end_date")
		}
		if end.Sub(start) < f.MinSpan() {
			return report.OrganizationHashtag{}, perr.WithField(
				perr.Validationf("minimum date difference is %d days", int(f.MinSpan().Hours()/24)), "end_date")
		}
	}
	return report.OrganizationHashtag{Hashtags: tags, Frequency: f, Start: start, End: end}, nil
}

// HashtagBucket is one hashtag's totals inside one time bucket
type HashtagBucket struct {
	Hashtag                 string  `json:"hashtag" example:"hotosm"`
	Frequency               string  `json:"frequency" example:"m"`
	StartDate               string  `json:"start_date" example:"2021-01-01"`
	EndDate                 string  `json:"end_date" example:"2021-01-31"`
	TotalNewBuildings       int64   `json:"total_new_buildings" example:"1520"`
	TotalUniqueContributors int64   `json:"total_unique_contributors" example:"41"`
	TotalNewRoadKm          float64 `json:"total_new_road_km" example:"12.4"`
	TotalNewAmenities       int64   `json:"total_new_amenities" example:"8"`
	TotalNewPlaces          int64   `json:"total_new_places" example:"3"`
}
