package osmgraph

import (
	"math"
	"testing"
)

// A degree-two chain 1-2-3-4-5 with no branching: only 1 and 5 are
// endpoints under the §4.8 predicate, so Simplify should contract it to
// a single edge whose weight equals the original path's total weight.
func TestSimplifyContractsDegreeTwoChain(t *testing.T) {
	nodes := straightLineNodes(5)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3, 4, 5}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	sg := Simplify(g)
	if sg.VertexCount() != 2 {
		t.Fatalf("expected 2 endpoints (1 and 5), got %d", sg.VertexCount())
	}

	uSimple, uOK := sg.vertexOf[1]
	vSimple, vOK := sg.vertexOf[5]
	if !uOK || !vOK {
		t.Fatalf("expected endpoints 1 and 5 to survive simplification")
	}

	var edge *simplifiedEdge
	for i := range sg.adjacency[uSimple] {
		if sg.adjacency[uSimple][i].to == vSimple {
			edge = &sg.adjacency[uSimple][i]
		}
	}
	if edge == nil {
		t.Fatalf("expected a contracted edge from 1 to 5")
	}

	original := []int{g.VertexIndex(1), g.VertexIndex(2), g.VertexIndex(3), g.VertexIndex(4), g.VertexIndex(5)}
	want := totalPathWeight(g, original)
	if math.Abs(edge.Weight-want) > 1e-9*float64(len(original)) {
		t.Fatalf("expected contracted weight %f, got %f", want, edge.Weight)
	}
}

// A branching junction at node 3 (1-2-3, 3-4, 3-5) makes node 3 an
// endpoint under predicate (d): it has three distinct neighbors, not two.
func TestSimplifyKeepsBranchingNodeAsEndpoint(t *testing.T) {
	nodes := map[NodeID]*Node{
		1: {ID: 1, Location: GeoLocation{Lat: 0, Lon: 0}},
		2: {ID: 2, Location: GeoLocation{Lat: 0, Lon: 0.01}},
		3: {ID: 3, Location: GeoLocation{Lat: 0, Lon: 0.02}},
		4: {ID: 4, Location: GeoLocation{Lat: 0.01, Lon: 0.02}},
		5: {ID: 5, Location: GeoLocation{Lat: -0.01, Lon: 0.02}},
	}
	ways := map[WayID]*Way{
		1: chainWay(1, []NodeID{1, 2, 3}, false),
		2: chainWay(2, []NodeID{3, 4}, false),
		3: chainWay(3, []NodeID{3, 5}, false),
	}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	sg := Simplify(g)
	if _, ok := sg.vertexOf[3]; !ok {
		t.Fatalf("expected branching node 3 to remain an endpoint")
	}
}

func TestSimplifyKeepsTrafficSignalAsEndpoint(t *testing.T) {
	nodes := straightLineNodes(5)
	nodes[3].controlType = IsSignal
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3, 4, 5}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	sg := Simplify(g)
	if _, ok := sg.vertexOf[3]; !ok {
		t.Fatalf("expected signal-controlled node 3 to remain an endpoint despite degree two")
	}
}

func TestSimplifyKeepsDeadEndAsEndpoint(t *testing.T) {
	nodes := straightLineNodes(3)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3}, true)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	sg := Simplify(g)
	if _, ok := sg.vertexOf[1]; !ok {
		t.Fatalf("expected source node 1 (no in-edges) to be an endpoint")
	}
	if _, ok := sg.vertexOf[3]; !ok {
		t.Fatalf("expected sink node 3 (no out-edges) to be an endpoint")
	}
}
