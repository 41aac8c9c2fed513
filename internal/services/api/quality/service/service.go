// Package service contains data quality workflows
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"galaxy/internal/core/filter"
	"galaxy/internal/core/mapping"
	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	perr "galaxy/internal/platform/errors"
	"galaxy/internal/services/api/quality/domain"
	"galaxy/internal/services/api/quality/repo"
)

// Service defines the data quality service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the data quality service
type Svc struct {
	db      repokit.Resolver
	binder  repokit.Binder[repo.Repo]
	timeout time.Duration
}

// New constructs a data quality service
func New(db repokit.Resolver, binder repokit.Binder[repo.Repo], timeout time.Duration) *Svc {
	if db == nil {
		panic("quality.Service requires a non nil source resolver")
	}
	if binder == nil {
		panic("quality.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, timeout: timeout}
}

func (s *Svc) issues(ctx context.Context, spec report.Spec) ([]repo.IssueRow, error) {
	plan, err := report.Build(spec)
	if err != nil {
		return nil, err
	}
	var rows []repo.IssueRow
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		var err error
		rows, err = rp.Issues(ctx, plan)
		return err
	})
	return rows, err
}

// HashtagReport lists flagged features of changesets carrying the hashtags or inside the area
func (s *Svc) HashtagReport(ctx context.Context, in domain.HashtagInput) (domain.Document, error) {
	spec, err := in.Validate()
	if err != nil {
		return domain.Document{}, err
	}
	rows, err := s.issues(ctx, report.QualityByHashtag{
		Range:    spec.Range,
		Hashtags: spec.Hashtags,
		Issues:   spec.Issues,
		Geometry: spec.Geometry,
	})
	if err != nil {
		return domain.Document{}, err
	}
	return render(in.OutputType, "data_quality_hashtags", rows)
}

// HashtagSummary counts flagged values per validation source
func (s *Svc) HashtagSummary(ctx context.Context, in domain.HashtagFilters) ([]domain.SummaryRow, error) {
	spec, err := in.Validate()
	if err != nil {
		return nil, err
	}
	plan, err := report.Build(report.QualityHashtagSummary{
		Range:    spec.Range,
		Hashtags: spec.Hashtags,
		Issues:   spec.Issues,
		Geometry: spec.Geometry,
	})
	if err != nil {
		return nil, err
	}
	out := []domain.SummaryRow{}
	err = repokit.Snapshot(ctx, s.db, plan.Source(), s.timeout, s.binder, func(ctx context.Context, rp repo.Repo) error {
		rows, err := rp.Summary(ctx, plan)
		for _, r := range rows {
			out = append(out, domain.SummaryRow(r))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UsernameReport lists flagged features edited by the users inside a window of at most a month
func (s *Svc) UsernameReport(ctx context.Context, in domain.UsernameInput) (domain.Document, error) {
	r := filter.TimeRange{From: in.FromTimestamp.Time, To: in.ToTimestamp.Time}
	if err := r.Validate(domain.MaxUsernameSpan); err != nil {
		return domain.Document{}, err
	}
	issues, err := report.ParseIssueTypes(in.IssueTypes)
	if err != nil {
		return domain.Document{}, err
	}
	tags := filter.HashtagSet{Hashtags: in.Hashtags, ProjectIDs: in.ProjectIDs}
	if err := tags.Validate(); err != nil {
		return domain.Document{}, err
	}
	rows, err := s.issues(ctx, report.QualityByUsername{Range: r, Usernames: in.OsmUsernames, Hashtags: tags, Issues: issues})
	if err != nil {
		return domain.Document{}, err
	}
	return render(in.OutputType, "data_quality_users", rows)
}

// ProjectReport lists flagged features inside changesets of tasking manager projects
func (s *Svc) ProjectReport(ctx context.Context, in domain.ProjectInput) (domain.Document, error) {
	issues, err := report.ParseIssueTypes(in.IssueTypes)
	if err != nil {
		return domain.Document{}, err
	}
	if err := (filter.HashtagSet{ProjectIDs: in.ProjectIDs}).Validate(); err != nil {
		return domain.Document{}, err
	}
	rows, err := s.issues(ctx, report.QualityByProject{ProjectIDs: in.ProjectIDs, Issues: issues})
	if err != nil {
		return domain.Document{}, err
	}
	return render(in.OutputType, "data_quality_projects", rows)
}

func records(rows []repo.IssueRow) []domain.Issue {
	out := make([]domain.Issue, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Issue{
			OsmID:              r.OsmID,
			ChangesetID:        r.ChangesetID,
			ChangesetTimestamp: r.Timestamp.UTC(),
			Username:           r.Username,
			IssueTypes:         r.Issues,
			Values:             r.Values,
			Lat:                r.Lat,
			Lon:                r.Lon,
		})
	}
	return out
}

// render writes issue points as a GeoJSON feature collection or a CSV attachment
func render(format, name string, rows []repo.IssueRow) (domain.Document, error) {
	recs := records(rows)
	switch format {
	case domain.FormatCSV:
		var buf bytes.Buffer
		if err := mapping.WriteCSV(&buf, recs); err != nil {
			return domain.Document{}, err
		}
		return domain.Document{Format: format, Filename: name + ".csv", Body: buf.Bytes()}, nil
	case domain.FormatGeoJSON, "":
		points := make([]mapping.Point, 0, len(recs))
		for _, r := range recs {
			props := map[string]any{
				"osm_id":              r.OsmID,
				"changeset_id":        r.ChangesetID,
				"changeset_timestamp": r.ChangesetTimestamp.Format(time.RFC3339),
				"issue_type":          r.IssueTypes,
			}
			if r.Username != "" {
				props["username"] = r.Username
			}
			if len(r.Values) > 0 {
				props["values"] = r.Values
			}
			points = append(points, mapping.Point{Lon: r.Lon, Lat: r.Lat, Properties: props})
		}
		body, err := json.Marshal(mapping.FeatureCollection(points))
		if err != nil {
			return domain.Document{}, perr.Wrap(err, perr.ErrorCodeMapping, "encode geojson")
		}
		return domain.Document{Format: domain.FormatGeoJSON, Body: body}, nil
	}
	return domain.Document{}, perr.WithField(perr.Validationf("output_type must be geojson or csv"), "output_type")
}
