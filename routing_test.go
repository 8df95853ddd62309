package osmgraph

import (
	"math"
	"testing"
)

// referenceNetwork builds the eight-node, four-way fixture with one turn
// restriction used throughout this file, matching the distances and
// scenarios worked out against the reference network.
func referenceNetwork(wt WeightType) *Graph {
	nodes := map[NodeID]*Node{
		1001: {ID: 1001, Location: GeoLocation{Lat: -38.0751637, Lon: 145.3326838}},
		1002: {ID: 1002, Location: GeoLocation{Lat: -38.0752637, Lon: 145.3326838}},
		1003: {ID: 1003, Location: GeoLocation{Lat: -38.0753637, Lon: 145.3326838}},
		1004: {ID: 1004, Location: GeoLocation{Lat: -38.0754637, Lon: 145.3326838}},
		1005: {ID: 1005, Location: GeoLocation{Lat: -38.0755637, Lon: 145.3326838}},
		1006: {ID: 1006, Location: GeoLocation{Lat: -38.0752637, Lon: 145.3327838}},
		1007: {ID: 1007, Location: GeoLocation{Lat: -38.0753637, Lon: 145.3327838}},
		1008: {ID: 1008, Location: GeoLocation{Lat: -38.0753637, Lon: 145.3328838}},
	}
	ways := map[WayID]*Way{
		2001: {ID: 2001, Nodes: []NodeID{1001, 1002, 1003, 1004}, Highway: "residential", MaxSpeed: 50, Lanes: 2, Oneway: false},
		2002: {ID: 2002, Nodes: []NodeID{1001, 1006, 1007, 1004}, Highway: "residential", MaxSpeed: 100, Lanes: 4, Oneway: false},
		2003: {ID: 2003, Nodes: []NodeID{1004, 1005}, Highway: "residential", MaxSpeed: 50, Lanes: 2, Oneway: false},
		2004: {ID: 2004, Nodes: []NodeID{1008, 1007}, Highway: "residential", MaxSpeed: 50, Lanes: 1, Oneway: true},
	}
	restrictions := map[RestrictionID]*Restriction{
		3001: {ID: 3001, Type: "no_right_turn", Form: formExclusion, FromWay: 2002, ToWay: 2001, ViaNode: 1004},
	}
	return newTestGraph(nodes, ways, restrictions, wt)
}

func assertPath(t *testing.T, got []NodeID, want []NodeID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected path %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, got)
		}
	}
}

func TestS1DistanceShortestPath(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	path, err := ShortestPath(g, DijkstraVector, 1001, 1004)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPath(t, path, []NodeID{1001, 1002, 1003, 1004})
}

func TestS2TimeShortestPrefersFasterLongerRoad(t *testing.T) {
	g := referenceNetwork(WeightTime)
	path, err := ShortestPath(g, DijkstraVector, 1001, 1004)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPath(t, path, []NodeID{1001, 1006, 1007, 1004})
}

func TestS3NoRestrictionBaseline(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	path, err := ShortestPath(g, DijkstraVector, 1007, 1003, WithCostAdjustment(func(*Graph, int, int, []int) float64 { return 0 }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPath(t, path, []NodeID{1007, 1004, 1003})
}

func TestS4RestrictionActiveDetours(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	path, err := ShortestPath(g, DijkstraVector, 1007, 1003)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPath(t, path, []NodeID{1007, 1006, 1001, 1002, 1003})
}

func TestS5NoPathAcrossOnewayWrongDirection(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	path, err := ShortestPath(g, DijkstraVector, 1007, 1008)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != nil {
		t.Fatalf("expected no path 1007->1008 against the one-way way, got %v", path)
	}
}

func TestS6WeightTimeRatioEqualsMaxspeed(t *testing.T) {
	gDist := referenceNetwork(WeightDistance)
	gTime := referenceNetwork(WeightTime)

	u, v := gDist.VertexIndex(1001), gDist.VertexIndex(1002)
	distW := totalPathWeight(gDist, []int{u, v})
	timeW := totalPathWeight(gTime, []int{u, v})

	way, _ := gDist.Way(2001)
	ratio := distW / timeW
	if math.Abs(ratio-float64(way.MaxSpeed)) > 1e-9 {
		t.Fatalf("expected weight/time ratio to equal maxspeed %d, got %f", way.MaxSpeed, ratio)
	}
}

func TestAlgorithmAgreementDijkstraAndAStar(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	dijkstra, err := ShortestPath(g, DijkstraVector, 1001, 1004)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	astar, err := ShortestPath(g, AStarVector, 1001, 1004)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dCost := totalPathWeight(g, nodeIDsToVertexPath(g, dijkstra))
	aCost := totalPathWeight(g, nodeIDsToVertexPath(g, astar))
	if math.Abs(dCost-aCost) > 1e-9 {
		t.Fatalf("expected Dijkstra and A* to agree on cost, got %f vs %f", dCost, aCost)
	}
}

// TestAlgorithmAgreementAllFourVariants verifies P3 from §8: Dijkstra
// and A* agree on total cost whether backed by dense arrays (Vector) or
// hash maps (Dict).
func TestAlgorithmAgreementAllFourVariants(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	variants := []Algorithm{DijkstraVector, DijkstraDict, AStarVector, AStarDict}
	var costs []float64
	for _, alg := range variants {
		path, err := ShortestPath(g, alg, 1001, 1004)
		if err != nil {
			t.Fatalf("algorithm %v: unexpected error: %v", alg, err)
		}
		if path == nil {
			t.Fatalf("algorithm %v: expected a path", alg)
		}
		costs = append(costs, totalPathWeight(g, nodeIDsToVertexPath(g, path)))
	}
	for i := 1; i < len(costs); i++ {
		if math.Abs(costs[i]-costs[0]) > 1e-9 {
			t.Fatalf("expected all algorithm variants to agree on cost, got %v", costs)
		}
	}
}

func nodeIDsToVertexPath(g *Graph, path []NodeID) []int {
	out := make([]int, len(path))
	for i, id := range path {
		out[i] = g.VertexIndex(id)
	}
	return out
}

func TestWithMaxDistanceAbandonsSearch(t *testing.T) {
	g := referenceNetwork(WeightDistance)
	path, err := ShortestPath(g, DijkstraVector, 1001, 1004, WithMaxDistance(1e-6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != nil {
		t.Fatalf("expected max_distance to abandon the search, got %v", path)
	}
}
