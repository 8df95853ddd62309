package osmgraph

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// LinestringGeoJSON renders a sequence of locations as a GeoJSON
// LineString, e.g. for rendering a shortest_path result.
func LinestringGeoJSON(pts []GeoLocation) ([]byte, error) {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon, pts[i].Lat}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "osmgraph: geojson linestring")
	}
	return b, nil
}

// PointGeoJSON renders a single location as a GeoJSON Point.
func PointGeoJSON(pt GeoLocation) ([]byte, error) {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "osmgraph: geojson point")
	}
	return b, nil
}
