package osmgraph

import (
	"math"
	"testing"
)

func TestNearestWayReturnsTheBracketingSegmentAndFraction(t *testing.T) {
	nodes := straightLineNodes(3) // 1,2,3 along the equator, 0.01deg apart
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	// A point just north of the midpoint between nodes 2 (lon 0.01) and
	// 3 (lon 0.02), so the closest segment is unambiguously (2,3).
	query := GeoLocation{Lat: 0.001, Lon: 0.015}
	wd, ok := NearestWay(g, query, 5)
	if !ok {
		t.Fatalf("expected a nearest way to be found")
	}
	if wd.WayID != 1 {
		t.Fatalf("expected way 1, got %d", wd.WayID)
	}
	ep := wd.EdgePoint
	if ep.N1 != 2 || ep.N2 != 3 {
		t.Fatalf("expected the bracketing segment (2,3), got (%d,%d)", ep.N1, ep.N2)
	}
	if ep.Fraction < 0 || ep.Fraction > 1 {
		t.Fatalf("expected fraction in [0,1], got %f", ep.Fraction)
	}
	if math.IsNaN(ep.Location.Lat) || math.IsNaN(ep.Location.Lon) {
		t.Fatalf("expected a valid projected location")
	}
}

func TestClosestPointOnSegmentFractionAtEndpoints(t *testing.T) {
	a := GeoLocation{Lat: 0, Lon: 0}
	b := GeoLocation{Lat: 0, Lon: 0.01}

	if pt, frac := closestPointOnSegment(a, b, a); frac != 0 || pt != a {
		t.Fatalf("expected fraction 0 and point a when projecting a onto its own segment, got frac=%f pt=%v", frac, pt)
	}
	if _, frac := closestPointOnSegment(a, b, b); frac != 1 {
		t.Fatalf("expected fraction 1 when projecting b onto its own segment, got %f", frac)
	}
	if _, frac := closestPointOnSegment(a, b, GeoLocation{Lat: 0, Lon: 0.005}); math.Abs(frac-0.5) > 1e-9 {
		t.Fatalf("expected fraction 0.5 at the segment midpoint, got %f", frac)
	}
}
