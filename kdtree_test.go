package osmgraph

import (
	"math"
	"testing"
)

func TestKDTreeNearestFindsClosest(t *testing.T) {
	nodes := straightLineNodes(5)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3, 4, 5}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	query := GeoLocation{Lat: 0, Lon: 0.021}
	vertex, dist, ok := g.kd.nearest(query, nil)
	if !ok {
		t.Fatalf("expected a nearest result")
	}
	if g.nodeOf[vertex] != 3 {
		t.Fatalf("expected node 3 to be nearest, got %d", g.nodeOf[vertex])
	}
	if dist < 0 || math.IsNaN(dist) {
		t.Fatalf("expected a valid non-negative distance, got %f", dist)
	}
}

func TestKDTreeNearestHonorsFilter(t *testing.T) {
	nodes := straightLineNodes(3)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	excludeIdx := g.VertexIndex(2)
	filter := func(v int) bool { return v != excludeIdx }
	query := nodes[2].Location
	vertex, _, ok := g.kd.nearest(query, filter)
	if !ok {
		t.Fatalf("expected a result with filter applied")
	}
	if vertex == excludeIdx {
		t.Fatalf("filter should have excluded vertex %d", excludeIdx)
	}
}

func TestKDTreeKNearestOrdersByDistance(t *testing.T) {
	nodes := straightLineNodes(5)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3, 4, 5}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	query := nodes[3].Location
	results := g.kd.kNearest(query, 3, nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].distSq < results[i-1].distSq {
			t.Fatalf("results not sorted by ascending distance")
		}
	}
	if g.nodeOf[results[0].vertex] != 3 {
		t.Fatalf("expected node 3 itself to be closest, got %d", g.nodeOf[results[0].vertex])
	}
}
