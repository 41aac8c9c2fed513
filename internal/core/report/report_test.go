package report

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"galaxy/internal/core/filter"
	perr "galaxy/internal/platform/errors"
)

var (
	from = time.Date(2021, 8, 27, 9, 0, 0, 0, time.UTC)
	to   = time.Date(2021, 8, 27, 11, 0, 0, 0, time.UTC)
	win  = filter.TimeRange{From: from, To: to}

	mapathonProjects = []int64{11224, 10042, 9906, 1381, 11203, 10681, 8055, 8732, 11193, 7305,
		11210, 10985, 10988, 11190, 6658, 5644, 10913, 6495, 4229}
	mapathonTags = filter.HashtagSet{Hashtags: []string{"mapandchathour2021"}, ProjectIDs: mapathonProjects}
)

var dollarRe = regexp.MustCompile(`\$(\d+)`)

// checkPlaceholders asserts $1..$n are used and match the bound args
func checkPlaceholders(t *testing.T, q Query) {
	t.Helper()
	if strings.Contains(q.SQL, "?") {
		t.Fatalf("%s: unreplaced placeholder in\n%s", q.Name, q.SQL)
	}
	max := 0
	for _, m := range dollarRe.FindAllStringSubmatch(q.SQL, -1) {
		n, _ := strconv.Atoi(m[1])
		if n > max {
			max = n
		}
	}
	if max != len(q.Args) {
		t.Fatalf("%s: highest placeholder $%d but %d args\n%s", q.Name, max, len(q.Args), q.SQL)
	}
}

func mustBuild(t *testing.T, s Spec) Plan {
	t.Helper()
	p, err := Build(s)
	if err != nil {
		t.Fatalf("Build(%s): %v", s.Kind(), err)
	}
	for _, q := range p.Queries {
		checkPlaceholders(t, q)
	}
	return p
}

func TestMapathonSummaryStatements(t *testing.T) {
	p := mustBuild(t, MapathonSummary{Range: win, Tags: mapathonTags})
	if p.Source() != SourceUnderpass {
		t.Fatalf("source = %v", p.Source())
	}

	features, err := p.Must("mapped_features")
	if err != nil {
		t.Fatal(err)
	}
	// two bounds plus one candidate per hashtag and project
	if want := 2 + 1 + len(mapathonProjects); len(features.Args) != want {
		t.Fatalf("args = %d, want %d", len(features.Args), want)
	}
	if features.Args[0] != from || features.Args[1] != to {
		t.Fatalf("time bounds not first: %v", features.Args[:2])
	}
	for _, frag := range []string{
		"WITH t1 AS (SELECT added, modified, deleted FROM changesets WHERE (created_at BETWEEN $1 AND $2 AND (",
		"each(t1.added)", "each(t1.modified)", "each(t1.deleted)",
		"ORDER BY count DESC, feature ASC, action ASC",
	} {
		if !strings.Contains(features.SQL, frag) {
			t.Fatalf("missing %q in\n%s", frag, features.SQL)
		}
	}

	count, _ := p.Must("contributors_count")
	if !strings.Contains(count.SQL, "COUNT(DISTINCT user_id) AS contributors_count") {
		t.Fatalf("contributors sql:\n%s", count.SQL)
	}
}

func TestMapathonDetailStatements(t *testing.T) {
	p := mustBuild(t, MapathonDetail{Range: win, Tags: mapathonTags})

	features, _ := p.Must("mapped_features")
	if !strings.Contains(features.SQL, "ORDER BY feature ASC, action ASC, username ASC, user_id ASC") {
		t.Fatalf("detail features must be audit ordered:\n%s", features.SQL)
	}
	if !strings.Contains(features.SQL, "c.created_at BETWEEN $1 AND $2") {
		t.Fatalf("alias not applied:\n%s", features.SQL)
	}

	contributors, _ := p.Must("contributors")
	for _, frag := range []string{
		"t1.added -> 'building' IS NOT NULL",
		"GROUP BY t3.user_id, t3.username, t2.editors",
		"ARRAY_AGG(DISTINCT editor ORDER BY editor) AS editors",
	} {
		if !strings.Contains(contributors.SQL, frag) {
			t.Fatalf("missing %q in\n%s", frag, contributors.SQL)
		}
	}
}

func TestTaskActivityStatements(t *testing.T) {
	p := mustBuild(t, TaskActivity{Range: win, ProjectIDs: []int64{11224, 10042}})
	if p.Source() != SourceTaskingManager {
		t.Fatalf("source = %v", p.Source())
	}
	names := make([]string, 0, len(p.Queries))
	for _, q := range p.Queries {
		names = append(names, q.Name)
	}
	if want := []string{"tasks_mapped", "tasks_validated", "time_mapping", "time_validating"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v", names)
	}
	mapped, _ := p.Must("tasks_mapped")
	if !strings.Contains(mapped.SQL, "project_id IN ($") {
		t.Fatalf("project filter missing:\n%s", mapped.SQL)
	}
	if !reflect.DeepEqual(mapped.Args, []any{"STATE_CHANGE", "MAPPED", from, to, int64(11224), int64(10042)}) {
		t.Fatalf("args = %v", mapped.Args)
	}
	spent, _ := p.Must("time_mapping")
	if !strings.Contains(spent.SQL, "SUM(CAST(action_text AS INTERVAL)) AS spent") {
		t.Fatalf("time sql:\n%s", spent.SQL)
	}
}

func TestChangesetsUseFreeTextOnRaw(t *testing.T) {
	p := mustBuild(t, Changesets{Range: win, Tags: filter.HashtagSet{Hashtags: []string{"missingmaps"}, ProjectIDs: []int64{7}}})
	if p.Source() != SourceRaw {
		t.Fatalf("source = %v", p.Source())
	}
	q := p.Queries[0]
	if got := strings.Count(q.SQL, " ILIKE $"); got != 12 {
		t.Fatalf("ILIKE predicates = %d\n%s", got, q.SQL)
	}
	if !strings.Contains(q.SQL, "FROM osm_changeset") {
		t.Fatalf("wrong table:\n%s", q.SQL)
	}
}

func TestQualityByHashtagScenario(t *testing.T) {
	p := mustBuild(t, QualityByHashtag{
		Range:    win,
		Hashtags: []string{"missingmaps"},
		Issues:   []IssueType{IssueBadGeom},
	})
	q := p.Queries[0]
	for _, frag := range []string{
		"unnest(hashtags) AS unnest_hashtags",
		"WHERE unnest_hashtags IN ($3)",
		"WHERE t1.unnest_status IN ($4)",
	} {
		if !strings.Contains(q.SQL, frag) {
			t.Fatalf("missing %q in\n%s", frag, q.SQL)
		}
	}
	if !reflect.DeepEqual(q.Args, []any{from, to, "missingmaps", "badgeom"}) {
		t.Fatalf("args = %v", q.Args)
	}
	if strings.Contains(q.SQL, "ST_Contains") {
		t.Fatalf("no geometry was given:\n%s", q.SQL)
	}
}

func TestQualityByHashtagGeometryOnly(t *testing.T) {
	g, err := filter.ParseWKT("POLYGON((85.3 27.7,85.31 27.7,85.31 27.71,85.3 27.71,85.3 27.7))")
	if err != nil {
		t.Fatal(err)
	}
	p := mustBuild(t, QualityByHashtag{Range: win, Issues: []IssueType{IssueBadValue}, Geometry: g})
	q := p.Queries[0]
	if !strings.Contains(q.SQL, "ST_Contains(ST_GeomFromGeoJSON($1), v.location)") {
		t.Fatalf("geometry filter missing:\n%s", q.SQL)
	}
	if strings.Contains(q.SQL, "unnest_hashtags") {
		t.Fatalf("hashtags should not be unnested without hashtags:\n%s", q.SQL)
	}

	if _, err := Build(QualityByHashtag{Range: win, Issues: []IssueType{IssueBadValue}}); !perr.IsCode(err, perr.ErrorCodeQueryConstruction) {
		t.Fatalf("neither hashtags nor geometry: %v", err)
	}
}

func TestOrganizationHashtagScenario(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	p := mustBuild(t, OrganizationHashtag{Hashtags: []string{"hotosm"}, Frequency: Weekly, Start: start, End: end})
	q := p.Queries[0]
	for _, frag := range []string{
		"date_trunc($",
		"COUNT(DISTINCT user_id) AS total_unique_contributors",
		"AS total_new_road_m",
		"ORDER BY bucket_start ASC, hashtag ASC",
	} {
		if !strings.Contains(q.SQL, frag) {
			t.Fatalf("missing %q in\n%s", frag, q.SQL)
		}
	}
	found := false
	for _, a := range q.Args {
		if a == "week" {
			found = true
		}
	}
	if !found {
		t.Fatalf("bucket unit not bound: %v", q.Args)
	}
}

func TestMapathonSummaryBindsLowercaseTags(t *testing.T) {
	q := mustBuild(t, MapathonSummary{Range: win, Tags: filter.HashtagSet{Hashtags: []string{"MapAndChatHour2021"}}}).Queries[0]
	var lower bool
	for _, a := range q.Args {
		switch a {
		case "MapAndChatHour2021":
			t.Fatalf("hashtag bound as given: %v", q.Args)
		case "mapandchathour2021":
			lower = true
		}
	}
	if !lower {
		t.Fatalf("lowercase hashtag not bound: %v", q.Args)
	}
}

func TestOrganizationHashtagBounds(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	q := mustBuild(t, OrganizationHashtag{Hashtags: []string{"HOTOSM"}, Frequency: Weekly, Start: start, End: end}).Queries[0]
	if !strings.Contains(q.SQL, "closed_at < $") || strings.Contains(q.SQL, "closed_at <= $") {
		t.Fatalf("end day should be bounded exclusively by the next midnight:\n%s", q.SQL)
	}
	var dayAfter bool
	for _, a := range q.Args {
		if ts, ok := a.(time.Time); ok && ts.Equal(end.Add(24*time.Hour)) {
			dayAfter = true
		}
		if s, ok := a.(string); ok && s == "HOTOSM" {
			t.Fatalf("hashtag bound as given: %v", q.Args)
		}
	}
	if !dayAfter {
		t.Fatalf("end bound should be 2022-03-02: %v", q.Args)
	}
}

func TestUserAndTaskingStatements(t *testing.T) {
	cases := []struct {
		spec Spec
		src  Source
		frag string
	}{
		{UserStatistics{Range: win, UserID: 42}, SourceUnderpass, "user_id = $3"},
		{UserList{Range: win, Usernames: []string{"alice", "bob"}}, SourceUnderpass, "u.username IN ($3,$4)"},
		{ValidatorStats{AfterYear: 2012, Country: "Nepal"}, SourceTaskingManager, "$2 = ANY(country)"},
		{Teams{}, SourceTaskingManager, "LEFT JOIN m ON m.team_id = t.id"},
		{TeamMembers{TeamID: 3}, SourceTaskingManager, "WHERE t.id = $2"},
		{TrainingOrganisations{}, SourceUnderpass, "FROM organizations"},
		{Trainings{TopicTypes: []string{"remote"}, EventType: "virtual"}, SourceUnderpass, "t.topictype IN ($1)"},
		{Freshness{Target: FreshValidation}, SourceUnderpass, "MAX(v.timestamp)"},
	}
	for _, c := range cases {
		p := mustBuild(t, c.spec)
		if p.Source() != c.src {
			t.Fatalf("%s: source = %v, want %v", c.spec.Kind(), p.Source(), c.src)
		}
		if !strings.Contains(p.Queries[0].SQL, c.frag) {
			t.Fatalf("%s: missing %q in\n%s", c.spec.Kind(), c.frag, p.Queries[0].SQL)
		}
	}
}

func TestMissingRequiredFilters(t *testing.T) {
	cases := []Spec{
		MapathonSummary{Tags: mapathonTags},
		MapathonSummary{Range: win},
		MapathonDetail{Range: win},
		TaskActivity{Range: win},
		Changesets{Range: win},
		QualityByUsername{Range: win, Issues: []IssueType{IssueBadGeom}},
		QualityByProject{Issues: []IssueType{IssueBadGeom}},
		QualityByProject{ProjectIDs: []int64{1}},
		OrganizationHashtag{Frequency: Weekly},
		UserStatistics{Range: win},
		UserList{Range: win},
		Freshness{},
	}
	for _, s := range cases {
		if _, err := Build(s); !perr.IsCode(err, perr.ErrorCodeQueryConstruction) {
			t.Fatalf("%s: want construction error, got %v", s.Kind(), err)
		}
	}
}

func TestContradictoryFilterStillValid(t *testing.T) {
	// a zero length window matches nothing but is still a well formed statement
	point := filter.TimeRange{From: from, To: from}
	p := mustBuild(t, MapathonSummary{Range: point, Tags: filter.HashtagSet{Hashtags: []string{"nothing-uses-this"}}})
	if len(p.Queries) != 2 {
		t.Fatalf("queries = %d", len(p.Queries))
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	specs := []Spec{
		MapathonSummary{Range: win, Tags: mapathonTags},
		MapathonDetail{Range: win, Tags: mapathonTags},
		Changesets{Range: win, Tags: mapathonTags},
		QualityByUsername{Range: win, Usernames: []string{"a"}, Issues: []IssueType{IssueBadGeom, IssueBadValue}},
		ValidatorStats{AfterYear: 2012, Organisation: "HOT", Country: "Nepal"},
	}
	for _, s := range specs {
		a := mustBuild(t, s)
		b := mustBuild(t, s)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: two builds differ", s.Kind())
		}
	}
}

func TestKindsHaveFixedSourceAndOrdering(t *testing.T) {
	for k, info := range kinds {
		if k.Source() != info.source || k.Ordering() != info.order {
			t.Fatalf("%s: accessors disagree with table", k)
		}
		if k.Source() == 0 {
			t.Fatalf("%s: no source", k)
		}
	}
	if KindMapathonSummary.Ordering() != OrderCountDesc || KindQualityByHashtag.Ordering() != OrderKeyAsc {
		t.Fatalf("summary views order by count, audit views by key")
	}
	if src, ok := ParseSource("TM"); !ok || src != SourceTaskingManager {
		t.Fatalf("ParseSource(TM) = %v %v", src, ok)
	}
}

func TestParseIssueTypes(t *testing.T) {
	got, err := ParseIssueTypes([]string{"all", "badgeom", "orphan"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []IssueType{IssueBadValue, IssueBadGeom, IssueOrphan}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, err := ParseIssueTypes([]string{"weird"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("unknown issue type: %v", err)
	}
	if _, err := ParseIssueTypes(nil); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty issue types: %v", err)
	}
}

func TestFrequency(t *testing.T) {
	f, err := ParseFrequency("q")
	if err != nil || f.Unit() != "quarter" || f.MinSpan() != 90*24*time.Hour {
		t.Fatalf("q = %v %v", f, err)
	}
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	if got := Weekly.BucketEnd(start); !got.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("weekly end = %v", got)
	}
	if _, err := ParseFrequency("d"); err == nil {
		t.Fatalf("d accepted")
	}
}

func TestParseFreshnessTarget(t *testing.T) {
	for _, s := range []string{"changesets", "validation"} {
		if got, err := ParseFreshnessTarget(s); err != nil || string(got) != s {
			t.Fatalf("%s = %v %v", s, got, err)
		}
	}
	if _, err := ParseFreshnessTarget("users"); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("users target: %v", err)
	}
}
