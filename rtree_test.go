package osmgraph

import "testing"

func TestRTreeIntersectingFindsOwningWay(t *testing.T) {
	nodes := straightLineNodes(3)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2, 3}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	c := geoToCartesian(nodes[2].Location)
	r := 0.5
	min := [3]float64{c.x - r, c.y - r, c.z - r}
	max := [3]float64{c.x + r, c.y + r, c.z + r}

	got := g.rt.intersecting(min, max)
	found := false
	for _, id := range got {
		if id == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected way 1 to intersect a box around one of its own nodes")
	}
}

func TestRTreeIntersectingEmptyFarAway(t *testing.T) {
	nodes := straightLineNodes(2)
	ways := map[WayID]*Way{1: chainWay(1, []NodeID{1, 2}, false)}
	g := newTestGraph(nodes, ways, nil, WeightDistance)

	far := geoToCartesian(GeoLocation{Lat: 80, Lon: 170})
	min := [3]float64{far.x - 1, far.y - 1, far.z - 1}
	max := [3]float64{far.x + 1, far.y + 1, far.z + 1}

	got := g.rt.intersecting(min, max)
	if len(got) != 0 {
		t.Fatalf("expected no ways near an unrelated far-away box, got %v", got)
	}
}
