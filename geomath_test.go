package osmgraph

import "testing"

func round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestHaversineKM(t *testing.T) {
	p1 := GeoLocation{Lon: 37.6417350769043, Lat: 55.751849391735284}
	p2 := GeoLocation{Lon: 37.668514251708984, Lat: 55.73261980350401}
	res := 2.71693096539 // kilometers
	got := haversineKM(p1, p2)
	if round(got, 0.0005) != round(res, 0.0005) {
		t.Errorf("haversine distance must be %f, but got %f", res, got)
	}
}

func TestHaversineKMZeroForIdenticalPoints(t *testing.T) {
	p := GeoLocation{Lon: 145.3326838, Lat: -38.0751637}
	if d := haversineKM(p, p); d != 0 {
		t.Errorf("distance between identical points must be 0, got %f", d)
	}
}

func TestSphericalLengthKM(t *testing.T) {
	line := []GeoLocation{
		{Lon: 145.3326838, Lat: -38.0751637},
		{Lon: 145.3326838, Lat: -38.0752637},
		{Lon: 145.3326838, Lat: -38.0753637},
	}
	total := sphericalLengthKM(line)
	expect := haversineKM(line[0], line[1]) + haversineKM(line[1], line[2])
	if round(total, 1e-9) != round(expect, 1e-9) {
		t.Errorf("expected cumulative length %f, got %f", expect, total)
	}
}
