package mapping

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Point is a located record rendered as a GeoJSON feature
type Point struct {
	Lon        float64
	Lat        float64
	Properties map[string]any
}

// FeatureCollection renders points in order; coordinates are [lon, lat]
func FeatureCollection(points []Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		for k, v := range p.Properties {
			f.Properties[k] = v
		}
		fc.Append(f)
	}
	return fc
}
