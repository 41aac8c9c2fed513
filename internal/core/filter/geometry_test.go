package filter

import (
	"strings"
	"testing"

	perr "galaxy/internal/platform/errors"
)

const square = `{"type":"Polygon","coordinates":[[[85.3,27.7],[85.31,27.7],[85.31,27.71],[85.3,27.71],[85.3,27.7]]]}`

func TestGeometryRoundTrip(t *testing.T) {
	g, err := ParseGeoJSON([]byte(square))
	if err != nil {
		t.Fatalf("ParseGeoJSON: %v", err)
	}
	back, err := ParseWKT(g.WKT())
	if err != nil {
		t.Fatalf("ParseWKT(%q): %v", g.WKT(), err)
	}
	if !g.Equal(back) {
		t.Fatalf("wkt round trip changed coordinates: %s vs %s", g.WKT(), back.WKT())
	}
	again, err := ParseGeoJSON([]byte(back.GeoJSON()))
	if err != nil {
		t.Fatalf("ParseGeoJSON(rendered): %v", err)
	}
	if !g.Equal(again) {
		t.Fatalf("geojson round trip changed coordinates")
	}
}

func TestGeometryRejects(t *testing.T) {
	cases := map[string]string{
		"not json":  `{"type":`,
		"point":     `{"type":"Point","coordinates":[85.3,27.7]}`,
		"open ring": `{"type":"Polygon","coordinates":[[[85.3,27.7],[85.31,27.7],[85.31,27.71],[85.3,27.71]]]}`,
		"too short": `{"type":"Polygon","coordinates":[[[85.3,27.7],[85.31,27.7],[85.3,27.7]]]}`,
		"off globe": `{"type":"Polygon","coordinates":[[[185.3,27.7],[185.31,27.7],[185.31,27.71],[185.3,27.7]]]}`,
	}
	for name, in := range cases {
		if _, err := ParseGeoJSON([]byte(in)); !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("%s: want validation error, got %v", name, err)
		}
	}
}

func TestGeometryArea(t *testing.T) {
	small, err := ParseGeoJSON([]byte(square))
	if err != nil {
		t.Fatal(err)
	}
	if a := small.AreaKm2(); a <= 0 || a > 2 {
		t.Fatalf("area = %f km2, want about 1", a)
	}
	if err := small.ValidateArea(MaxAreaKm2); err != nil {
		t.Fatalf("small polygon rejected: %v", err)
	}

	big, err := ParseWKT("POLYGON((80 20,90 20,90 30,80 30,80 20))")
	if err != nil {
		t.Fatal(err)
	}
	if err := big.ValidateArea(MaxAreaKm2); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("large polygon accepted: %v", err)
	}
}

func TestWithin(t *testing.T) {
	if !Within("location", nil).Empty() {
		t.Fatalf("nil geometry should give the empty fragment")
	}
	g, _ := ParseGeoJSON([]byte(square))
	sql, args := render(t, Within("location", g))
	if sql != "ST_Contains(ST_GeomFromGeoJSON(?), location)" {
		t.Fatalf("sql = %q", sql)
	}
	if s, ok := args[0].(string); !ok || !strings.Contains(s, `"Polygon"`) {
		t.Fatalf("arg = %v", args[0])
	}
}
