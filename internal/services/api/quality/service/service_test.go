package service

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"galaxy/internal/modkit/repokit/repotest"
	perr "galaxy/internal/platform/errors"
	ptime "galaxy/internal/platform/time"
	"galaxy/internal/services/api/quality/domain"
	"galaxy/internal/services/api/quality/repo"
)

var (
	from = time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	at   = time.Date(2021, 7, 1, 3, 4, 5, 0, time.UTC)
)

const (
	smallArea = `{"type":"Polygon","coordinates":[[[85.3,27.7],[85.31,27.7],[85.31,27.71],[85.3,27.71],[85.3,27.7]]]}`
	hugeArea  = `{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`
)

func filters(hashtags []string, geometry string) domain.HashtagFilters {
	f := domain.HashtagFilters{
		FromTimestamp: ptime.At(from),
		ToTimestamp:   ptime.At(from.Add(12 * time.Hour)),
		Hashtags:      hashtags,
		IssueTypes:    []string{"all"},
	}
	if geometry != "" {
		f.Geometry = json.RawMessage(geometry)
	}
	return f
}

func newSvc(db *repotest.DB) *Svc { return New(db.Resolver(), repo.NewPG(), time.Minute) }

func TestHashtagReport_GeoJSON(t *testing.T) {
	t.Parallel()

	db := repotest.New().On("quality_by_hashtag/issues",
		[]any{int64(42), int64(1001), []string{"building=yes"}, 27.7, 85.3, at, []string{"badgeom", "badvalue"}})
	doc, err := newSvc(db).HashtagReport(context.Background(), domain.HashtagInput{
		HashtagFilters: filters([]string{"missingmaps"}, smallArea),
		OutputType:     domain.FormatGeoJSON,
	})
	if err != nil {
		t.Fatal(err)
	}
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(doc.Body, &fc); err != nil {
		t.Fatal(err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("geojson = %s", doc.Body)
	}
	f := fc.Features[0]
	if !reflect.DeepEqual(f.Geometry.Coordinates, []float64{85.3, 27.7}) {
		t.Fatalf("coordinates should be [lon, lat]: %v", f.Geometry.Coordinates)
	}
	if f.Properties["changeset_timestamp"] != "2021-07-01T03:04:05Z" || f.Properties["osm_id"] != float64(42) {
		t.Fatalf("properties = %v", f.Properties)
	}

	sql := db.Calls()[0].SQL
	if !strings.Contains(sql, "ST_Contains(ST_GeomFromGeoJSON") || !strings.Contains(sql, "unnest_hashtags IN") {
		t.Fatalf("filters missing from statement: %s", sql)
	}
}

func TestHashtagReport_CSV(t *testing.T) {
	t.Parallel()

	db := repotest.New().On("quality_by_hashtag/issues",
		[]any{int64(42), int64(1001), []string{"building=yes"}, 27.7, 85.3, at, []string{"badgeom", "badvalue"}})
	doc, err := newSvc(db).HashtagReport(context.Background(), domain.HashtagInput{
		HashtagFilters: filters([]string{"missingmaps"}, ""),
		OutputType:     domain.FormatCSV,
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(doc.Body)), "\n")
	if lines[0] != "osm_id,changeset_id,changeset_timestamp,username,issue_type,latitude,longitude" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != `42,1001,2021-07-01T03:04:05Z,,"badgeom,badvalue",27.7,85.3` {
		t.Fatalf("row = %q", lines[1])
	}
	if doc.Filename != "data_quality_hashtags.csv" {
		t.Fatalf("filename = %q", doc.Filename)
	}
}

func TestHashtagReport_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.HashtagFilters{
		"no hashtags or geometry": filters(nil, ""),
		"area too large":          filters(nil, hugeArea),
		"open ring":               filters(nil, `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]]]}`),
		"point geometry":          filters(nil, `{"type":"Point","coordinates":[0,0]}`),
		"unknown issue": func() domain.HashtagFilters {
			f := filters([]string{"a"}, "")
			f.IssueTypes = []string{"typo"}
			return f
		}(),
		"window over 24h": func() domain.HashtagFilters {
			f := filters([]string{"a"}, "")
			f.ToTimestamp = ptime.At(from.Add(25 * time.Hour))
			return f
		}(),
	}
	for name, f := range cases {
		db := repotest.New()
		_, err := newSvc(db).HashtagReport(context.Background(), domain.HashtagInput{HashtagFilters: f, OutputType: "csv"})
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if len(db.Calls()) != 0 {
			t.Fatalf("%s: statement ran", name)
		}
	}
}

func TestHashtagSummary(t *testing.T) {
	t.Parallel()

	db := repotest.New().On("quality_hashtag_summary/summary",
		[]any{"building=yes", "underpass", int64(18)},
		[]any{"highway=path", nil, int64(2)})
	got, err := newSvc(db).HashtagSummary(context.Background(), filters([]string{"missingmaps"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.SummaryRow{{Value: "building=yes", Source: "underpass", Count: 18}, {Value: "highway=path", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("summary = %+v", got)
	}
}

func TestUsernameReport(t *testing.T) {
	t.Parallel()

	db := repotest.New().On("quality_by_username/issues",
		[]any{int64(7), int64(900), "zoe", at, 27.7, 85.3, []string{"badvalue"}})
	in := domain.UsernameInput{
		FromTimestamp: ptime.At(from),
		ToTimestamp:   ptime.At(from.AddDate(0, 0, 20)),
		OsmUsernames:  []string{"zoe"},
		IssueTypes:    []string{"badvalue"},
		OutputType:    "csv",
	}
	doc, err := newSvc(db).UsernameReport(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc.Body), "7,900,2021-07-01T03:04:05Z,zoe,badvalue,27.7,85.3") {
		t.Fatalf("csv = %s", doc.Body)
	}

	in.ToTimestamp = ptime.At(from.AddDate(0, 0, 31))
	if _, err := newSvc(repotest.New()).UsernameReport(context.Background(), in); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("31 day window should be rejected, got %v", err)
	}
}

func TestProjectReport(t *testing.T) {
	t.Parallel()

	db := repotest.New().On("quality_by_project/issues",
		[]any{int64(7), int64(900), at, 27.7, 85.3, []string{"badgeom"}})
	doc, err := newSvc(db).ProjectReport(context.Background(), domain.ProjectInput{
		ProjectIDs: []int64{11224},
		IssueTypes: []string{"badgeom"},
		OutputType: "geojson",
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != domain.FormatGeoJSON || !strings.Contains(string(doc.Body), `"issue_type":["badgeom"]`) {
		t.Fatalf("doc = %s", doc.Body)
	}
	args := db.Calls()[0].Args
	if args[0] != "hotosm-project-11224" {
		t.Fatalf("project tag arg = %v", args)
	}
}

func TestReport_EmptyResultStillRenders(t *testing.T) {
	t.Parallel()

	doc, err := newSvc(repotest.New()).ProjectReport(context.Background(), domain.ProjectInput{
		ProjectIDs: []int64{1},
		IssueTypes: []string{"all"},
		OutputType: "geojson",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc.Body), `"features":[]`) {
		t.Fatalf("empty collection = %s", doc.Body)
	}
}
