package filter

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	perr "galaxy/internal/platform/errors"
)

// MaxAreaKm2 caps geometry filters on the data quality reports
const MaxAreaKm2 = 5000

// Geometry is a polygonal area of interest in WGS84
type Geometry struct {
	geom orb.Geometry
}

// NewGeometry accepts a Polygon or MultiPolygon and checks ring closure
func NewGeometry(g orb.Geometry) (*Geometry, error) {
	switch v := g.(type) {
	case orb.Polygon:
		if err := checkPolygon(v); err != nil {
			return nil, err
		}
	case orb.MultiPolygon:
		if len(v) == 0 {
			return nil, perr.WithField(perr.Validationf("multipolygon has no polygons"), "geometry")
		}
		for _, p := range v {
			if err := checkPolygon(p); err != nil {
				return nil, err
			}
		}
	default:
		return nil, perr.WithField(perr.Validationf("geometry must be a Polygon or MultiPolygon"), "geometry")
	}
	return &Geometry{geom: g}, nil
}

func checkPolygon(p orb.Polygon) error {
	if len(p) == 0 {
		return perr.WithField(perr.Validationf("polygon has no rings"), "geometry")
	}
	for _, ring := range p {
		if len(ring) < 4 {
			return perr.WithField(perr.Validationf("polygon ring needs at least 4 positions"), "geometry")
		}
		if !ring.Closed() {
			return perr.WithField(perr.Validationf("polygon ring is not closed"), "geometry")
		}
		for _, pt := range ring {
			if pt.Lon() < -180 || pt.Lon() > 180 || pt.Lat() < -90 || pt.Lat() > 90 {
				return perr.WithField(perr.Validationf("coordinate %v out of range", pt), "geometry")
			}
		}
	}
	return nil
}

// ParseGeoJSON reads a GeoJSON geometry object
func ParseGeoJSON(data []byte) (*Geometry, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "malformed geojson geometry"), "geometry")
	}
	return NewGeometry(g.Geometry())
}

// ParseWKT reads a WKT polygon or multipolygon
func ParseWKT(s string) (*Geometry, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "malformed wkt geometry"), "geometry")
	}
	return NewGeometry(g)
}

// Orb exposes the underlying geometry
func (g *Geometry) Orb() orb.Geometry { return g.geom }

// GeoJSON renders the geometry object (not a feature)
func (g *Geometry) GeoJSON() string {
	b, err := geojson.NewGeometry(g.geom).MarshalJSON()
	if err != nil {
		// polygons always marshal
		return ""
	}
	return string(b)
}

// WKT renders the geometry as well known text
func (g *Geometry) WKT() string { return wkt.MarshalString(g.geom) }

// AreaKm2 returns the geodesic area in square kilometres
func (g *Geometry) AreaKm2() float64 { return geo.Area(g.geom) / 1e6 }

// Equal compares coordinate sequences
func (g *Geometry) Equal(o *Geometry) bool {
	if g == nil || o == nil {
		return g == o
	}
	return orb.Equal(g.geom, o.geom)
}

// ValidateArea rejects geometries larger than max km2
func (g *Geometry) ValidateArea(max float64) error {
	if a := g.AreaKm2(); a > max {
		return perr.WithField(perr.Validationf("area %.0f km2 exceeds %.0f km2", a, max), "geometry")
	}
	return nil
}

// Within matches rows whose column lies inside g; nil g gives the empty fragment
func Within(column string, g *Geometry) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	if g == nil {
		return Fragment{}
	}
	return Expr("ST_Contains(ST_GeomFromGeoJSON(?), "+column+")", g.GeoJSON())
}
