package osmgraph

import (
	"math"
	"testing"
)

func TestComputeWeightsDistanceMatchesHaversine(t *testing.T) {
	nodes := straightLineNodes(2)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	u, v := g.VertexIndex(1), g.VertexIndex(2)
	want := haversineKM(nodes[1].Location, nodes[2].Location)
	got := edgeWeightLookup(g, u, v)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected weight %f, got %f", want, got)
	}
}

func TestComputeWeightsTimeDividesBySpeed(t *testing.T) {
	nodes := straightLineNodes(2)
	way := chainWay(1, []NodeID{1, 2}, false)
	way.MaxSpeed = 100
	ways := map[WayID]*Way{1: way}
	g := newTestGraph(nodes, ways, nil, WeightTime)

	u, v := g.VertexIndex(1), g.VertexIndex(2)
	distKM := haversineKM(nodes[1].Location, nodes[2].Location)
	want := distKM / 100
	got := edgeWeightLookup(g, u, v)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected weight %f, got %f", want, got)
	}
}

func TestComputeWeightsNeverZero(t *testing.T) {
	nodes := map[NodeID]*Node{
		1: {ID: 1, Location: GeoLocation{Lat: 0, Lon: 0}},
		2: {ID: 2, Location: GeoLocation{Lat: 0, Lon: 0}},
	}
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	u, v := g.VertexIndex(1), g.VertexIndex(2)
	if edgeWeightLookup(g, u, v) <= 0 {
		t.Fatalf("expected strictly positive weight even for coincident nodes")
	}
}

func TestWeightsFromPathAndTotal(t *testing.T) {
	nodes := straightLineNodes(3)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	path := []int{g.VertexIndex(1), g.VertexIndex(2), g.VertexIndex(3)}
	weights := weightsFromPath(g, path)
	if len(weights) != 2 {
		t.Fatalf("expected 2 edge weights, got %d", len(weights))
	}
	total := totalPathWeight(g, path)
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(total-sum) > 1e-9 {
		t.Fatalf("total %f does not match sum of weights %f", total, sum)
	}
}

func TestExportedWeightsFromPathAndTotalMatchInternal(t *testing.T) {
	nodes := straightLineNodes(3)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	nodePath := []NodeID{1, 2, 3}
	vertexPath := []int{g.VertexIndex(1), g.VertexIndex(2), g.VertexIndex(3)}

	got := WeightsFromPath(g, nodePath)
	want := weightsFromPath(g, vertexPath)
	if len(got) != len(want) {
		t.Fatalf("expected %d weights, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("weight %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	if math.Abs(TotalPathWeight(g, nodePath)-totalPathWeight(g, vertexPath)) > 1e-9 {
		t.Fatalf("TotalPathWeight disagrees with totalPathWeight")
	}
}
