package osmgraph

import "github.com/pkg/errors"

// Trim implements §4.5: computes weakly connected components of the
// directed adjacency (edges treated as undirected for reachability),
// keeps only the largest, and cascades deletions through ways, edges,
// and restrictions before rebuilding the vertex bijection, weights,
// and spatial indices.
func Trim(g *Graph) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	components := weaklyConnectedComponents(g)
	if len(components) == 0 {
		return nil
	}

	largest := components[0]
	for _, c := range components[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}
	keep := make(map[int]struct{}, len(largest))
	for _, idx := range largest {
		keep[idx] = struct{}{}
	}

	keepNodeID := make(map[NodeID]struct{}, len(keep))
	for idx := range keep {
		keepNodeID[g.nodeOf[idx]] = struct{}{}
	}

	for id, w := range g.ways {
		for _, n := range w.Nodes {
			if _, ok := keepNodeID[n]; !ok {
				delete(g.ways, id)
				break
			}
		}
	}
	for id := range g.nodes {
		if _, ok := keepNodeID[id]; !ok {
			delete(g.nodes, id)
		}
	}
	for id, r := range g.restrictions {
		if _, ok := g.ways[r.FromWay]; !ok {
			delete(g.restrictions, id)
			continue
		}
		if _, ok := g.ways[r.ToWay]; !ok {
			delete(g.restrictions, id)
			continue
		}
		if r.isViaNode() {
			if _, ok := keepNodeID[r.ViaNode]; !ok {
				delete(g.restrictions, id)
			}
			continue
		}
		for _, wid := range r.ViaWays {
			if _, ok := g.ways[wid]; !ok {
				delete(g.restrictions, id)
				break
			}
		}
	}

	rebuild(g)
	return nil
}

// weaklyConnectedComponents returns the vertex-index groups reachable
// from each other ignoring edge direction, via union-find over the
// adjacency list (both directions of every half-edge union their
// endpoints).
func weaklyConnectedComponents(g *Graph) [][]int {
	n := len(g.nodeOf)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for u, edges := range g.adjacency {
		for _, e := range edges {
			union(u, e.to)
		}
	}
	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		r := find(i)
		groups[r] = append(groups[r], i)
	}
	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

// rebuild restores invariant I4 (dense, contiguous vertex index) after
// a node/way/edge deletion pass: reassigns vertex indices, rebuilds
// adjacency and the edge->way map from the surviving ways, recomputes
// weights, and rebuilds the spatial indices.
func rebuild(g *Graph) {
	assignVertexIndex(g)
	g.edgeWay = make(map[[2]int]WayID)
	buildAdjacency(g, g.ways)
	computeWeights(g)
	g.indexedRestrictions = indexRestrictions(g, g.restrictions)
	g.kd = buildKDTree(g)
	g.rt = buildRTree(g)
	g.dijkstraStates = make(map[int]*dijkstraState)
}

// AssertDataQuality re-checks invariant I1 (every way node is a
// retained node); callers can run it after a manual mutation.
func AssertDataQuality(g *Graph) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for id, w := range g.ways {
		for _, n := range w.Nodes {
			if _, ok := g.nodes[n]; !ok {
				return errors.Wrapf(ErrDataQuality, "way %d references missing node %d", id, n)
			}
		}
	}
	return nil
}
