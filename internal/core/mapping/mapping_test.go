package mapping

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	perr "galaxy/internal/platform/errors"
)

func TestZero(t *testing.T) {
	var nilInt *int64
	if Zero(nilInt) != 0 {
		t.Fatalf("nil aggregate should be 0")
	}
	v := 12.5
	if Zero(&v) != 12.5 {
		t.Fatalf("value lost")
	}
	var nilStr *string
	if Zero(nilStr) != "" {
		t.Fatalf("nil string should be empty")
	}
}

func TestCount(t *testing.T) {
	if Count(nil) != 0 {
		t.Fatalf("NULL sum should count 0")
	}
	v := 41.9999999
	if Count(&v) != 42 {
		t.Fatalf("Count = %d", Count(&v))
	}
}

func TestUnits(t *testing.T) {
	if got := MetersToKm(1500); got != 1.5 {
		t.Fatalf("MetersToKm = %v", got)
	}
	iv := pgtype.Interval{Microseconds: int64(90 * time.Minute / time.Microsecond), Days: 1, Valid: true}
	if got := Seconds(iv); got != 5400+86400 {
		t.Fatalf("Seconds = %v", got)
	}
	if Seconds(pgtype.Interval{}) != 0 {
		t.Fatalf("NULL interval should be 0")
	}
	if NonNegative(-3) != 0 || NonNegative(4) != 4 {
		t.Fatalf("NonNegative broken")
	}
}

func TestDecoders(t *testing.T) {
	cases := []struct {
		fn   func(int) (string, error)
		code int
		want string
	}{
		{MappingLevel, 1, "beginner"},
		{MappingLevel, 2, "intermediate"},
		{MappingLevel, 3, "advanced"},
		{ProjectStatus, 0, "archived"},
		{ProjectStatus, 1, "published"},
		{ProjectStatus, 2, "draft"},
		{TeamFunction, 1, "manager"},
		{TeamFunction, 2, "member"},
	}
	for _, c := range cases {
		got, err := c.fn(c.code)
		if err != nil || got != c.want {
			t.Fatalf("decode(%d) = %q, %v; want %q", c.code, got, err, c.want)
		}
	}
	for _, bad := range []func(int) (string, error){MappingLevel, ProjectStatus, TeamFunction} {
		if _, err := bad(4); !perr.IsCode(err, perr.ErrorCodeMapping) {
			t.Fatalf("out of range code: %v", err)
		}
	}
	if code, ok := ProjectStatusCode("draft"); !ok || code != 2 {
		t.Fatalf("ProjectStatusCode(draft) = %d, %v", code, ok)
	}
	if _, ok := ProjectStatusCode("deleted"); ok {
		t.Fatalf("unknown label should not encode")
	}
}

type pivotKey struct {
	user    int64
	project int64
}

func TestPivot(t *testing.T) {
	cells := []Cell[pivotKey]{
		{pivotKey{1, 10}, 2021, 5},
		{pivotKey{2, 10}, 2020, 1},
		{pivotKey{1, 10}, 2019, 2},
		{pivotKey{1, 10}, 2021, 1},
	}
	tbl, err := Pivot(cells)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.Columns, []int{2019, 2020, 2021}) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	want := []PivotRow[pivotKey]{
		{pivotKey{1, 10}, []int64{2, 0, 6}},
		{pivotKey{2, 10}, []int64{0, 1, 0}},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %+v", tbl.Rows)
	}

	if _, err := Pivot[pivotKey](nil); !perr.IsCode(err, perr.ErrorCodeQueryConstruction) {
		t.Fatalf("empty pivot: %v", err)
	}
}

type csvRecord struct {
	Hashtag  string    `json:"hashtag"`
	Start    time.Time `json:"start_date"`
	Total    float64   `json:"total" csv:"total_km"`
	Editors  []string  `json:"editors"`
	Optional *int64    `json:"optional"`
	Hidden   string    `json:"-"`
	internal int
}

func TestWriteCSVDeclaredOrder(t *testing.T) {
	one := int64(1)
	recs := []csvRecord{
		{Hashtag: "hotosm", Start: time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC), Total: 1.25, Editors: []string{"JOSM", "iD"}, Optional: &one, Hidden: "x"},
		{Hashtag: "missing,maps", Total: 0},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, recs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "hashtag,start_date,total_km,editors,optional" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != `hotosm,2022-01-03T00:00:00Z,1.25,"JOSM,iD",1` {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[2] != `"missing,maps",0001-01-01T00:00:00Z,0,,` {
		t.Fatalf("row = %q", lines[2])
	}
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection([]Point{{Lon: 85.3, Lat: 27.7, Properties: map[string]any{"osm_id": 7}}})
	b, err := json.Marshal(fc)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !strings.Contains(s, `"coordinates":[85.3,27.7]`) || !strings.Contains(s, `"osm_id":7`) {
		t.Fatalf("geojson = %s", s)
	}
}
