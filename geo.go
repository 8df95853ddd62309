package osmgraph

import "math"

// webMercatorR is the Web Mercator half-world extent in meters (pi times
// the 6378137 m sphere radius), used only to project
// lon/lat into a locally-flat plane so that turn angles between incident
// ways can be compared without the distortion of raw degrees.
const webMercatorR = 20037508.34

func toWebMercator(lon, lat float64) (float64, float64) {
	x := lon * webMercatorR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * webMercatorR / 180
	return x, y
}

// bearingVector returns a Web-Mercator-projected (dx, dy) vector pointing
// from `from` towards `to`, suitable for angle comparisons between ways
// meeting at a shared node.
func bearingVector(from, to GeoLocation) (float64, float64) {
	x0, y0 := toWebMercator(from.Lon, from.Lat)
	x1, y1 := toWebMercator(to.Lon, to.Lat)
	return x1 - x0, y1 - y0
}

// turnAngle returns the signed angle (radians, in (-pi, pi]) you must turn
// through to go from heading `inDX,inDY` to heading `outDX,outDY`. Zero
// means "continues straight ahead"; the restriction indexer (§4.4) uses
// this to pick the straight-on alternative at an only_straight_on via-node.
func turnAngle(inDX, inDY, outDX, outDY float64) float64 {
	angleIn := math.Atan2(inDY, inDX)
	angleOut := math.Atan2(outDY, outDX)
	angle := angleOut - angleIn
	if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}
