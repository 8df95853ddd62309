package osmgraph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// LinestringWKT renders a sequence of locations as a WKT LINESTRING,
// using orb/encoding/wkt for the geometry encoding rather than
// hand-formatting (the teacher's converter_wkt.go string-joined each
// point by hand; orb already ships an encoder the rest of the stack
// pulls in for orb.LineString values).
func LinestringWKT(pts []GeoLocation) string {
	return wkt.MarshalString(toOrbLineString(pts))
}

// PointWKT renders a single location as a WKT POINT.
func PointWKT(pt GeoLocation) string {
	return wkt.MarshalString(orb.Point{pt.Lon, pt.Lat})
}

func toOrbLineString(pts []GeoLocation) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i, p := range pts {
		line[i] = orb.Point{p.Lon, p.Lat}
	}
	return line
}
