package osmgraph

// SimplifiedGraph is the secondary graph §4.8 produces: vertices are
// only true intersections and dead-ends of the parent graph.
type SimplifiedGraph struct {
	parent *Graph

	nodeOf   []NodeID
	vertexOf map[NodeID]int

	adjacency [][]simplifiedEdge
}

// simplifiedEdge is one contracted path between two endpoints; Weight
// is the minimum over parallel contracted paths (§4.8 step 3), and
// Parallel holds any additional weights so callers can inspect them.
type simplifiedEdge struct {
	to       int
	Weight   float64
	Path     []int   // original vertex indices, endpoint to endpoint inclusive
	WayIDs   []WayID // way ids traversed
	Parallel []float64
}

// Simplify implements §4.8: enumerates endpoints by the predicate,
// walks each maximal degree-two chain to its far endpoint, and adds one
// contracted edge per endpoint pair. When paths are parallel, the edge
// keeps the minimum weight with that path's vertices and way ids; the
// other paths keep only their weights (in Parallel), not their vertex
// or way lists.
func Simplify(g *Graph) *SimplifiedGraph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	isEndpoint := make([]bool, len(g.nodeOf))
	for v := range g.nodeOf {
		isEndpoint[v] = endpointPredicate(g, v)
	}

	sg := &SimplifiedGraph{parent: g}
	sg.nodeOf = make([]NodeID, 0)
	sg.vertexOf = make(map[NodeID]int)
	for v, isEnd := range isEndpoint {
		if isEnd {
			id := g.nodeOf[v]
			sg.vertexOf[id] = len(sg.nodeOf)
			sg.nodeOf = append(sg.nodeOf, id)
		}
	}
	sg.adjacency = make([][]simplifiedEdge, len(sg.nodeOf))

	for v, isEnd := range isEndpoint {
		if !isEnd {
			continue
		}
		uSimpleIdx := sg.vertexOf[g.nodeOf[v]]
		for _, e := range g.adjacency[v] {
			path, wayIDs, weight, ok := walkChain(g, isEndpoint, v, e)
			if !ok {
				continue
			}
			endpointOrig := path[len(path)-1]
			vSimpleIdx, ok := sg.vertexOf[g.nodeOf[endpointOrig]]
			if !ok {
				continue
			}
			addSimplifiedEdge(sg, uSimpleIdx, vSimpleIdx, weight, path, wayIDs)
		}
	}
	return sg
}

// endpointPredicate implements §4.8's four disjuncts, plus the
// supplemented rule that a traffic-signal node is always an endpoint
// regardless of degree (§12).
func endpointPredicate(g *Graph, v int) bool {
	if g.nodes[g.nodeOf[v]].controlType == IsSignal {
		return true
	}
	neighbors := make(map[int]struct{})
	outDeg := len(g.adjacency[v])
	for _, e := range g.adjacency[v] {
		if e.to == v {
			return true // (a) self-loop
		}
		neighbors[e.to] = struct{}{}
	}
	inDeg := 0
	for u, edges := range g.adjacency {
		if u == v {
			continue
		}
		for _, e := range edges {
			if e.to == v {
				inDeg++
				neighbors[u] = struct{}{}
			}
		}
	}
	if outDeg == 0 || inDeg == 0 {
		return true // (b) source or sink
	}
	if len(neighbors) == 2 && inDeg != outDeg {
		return true // (c) one-way change
	}
	if len(neighbors) != 2 {
		return true // (d) not exactly two distinct neighbors
	}
	return false
}

// walkChain follows the unique non-returning neighbor from an endpoint
// until another endpoint is reached (§4.8 step 2), collecting the path
// and way ids traversed.
func walkChain(g *Graph, isEndpoint []bool, start int, first halfEdge) (path []int, wayIDs []WayID, weight float64, ok bool) {
	path = []int{start, first.to}
	wayIDs = []WayID{first.wayID}
	weight = first.weight
	prev, cur := start, first.to

	for !isEndpoint[cur] {
		next, e, found := uniqueForwardNeighbor(g, prev, cur)
		if !found {
			return nil, nil, 0, false
		}
		path = append(path, next)
		wayIDs = appendWayID(wayIDs, e.wayID)
		weight += e.weight
		prev, cur = cur, next
		if cur == start {
			break // self-loop chain back to the starting endpoint
		}
	}
	return path, wayIDs, weight, true
}

func uniqueForwardNeighbor(g *Graph, prev, cur int) (int, halfEdge, bool) {
	for _, e := range g.adjacency[cur] {
		if e.to != prev {
			return e.to, e, true
		}
	}
	if len(g.adjacency[cur]) == 1 {
		return g.adjacency[cur][0].to, g.adjacency[cur][0], true
	}
	return 0, halfEdge{}, false
}

func appendWayID(ids []WayID, id WayID) []WayID {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func addSimplifiedEdge(sg *SimplifiedGraph, u, v int, weight float64, path []int, wayIDs []WayID) {
	for i := range sg.adjacency[u] {
		if sg.adjacency[u][i].to == v {
			if weight < sg.adjacency[u][i].Weight {
				sg.adjacency[u][i].Parallel = append(sg.adjacency[u][i].Parallel, sg.adjacency[u][i].Weight)
				sg.adjacency[u][i].Weight = weight
				sg.adjacency[u][i].Path = path
				sg.adjacency[u][i].WayIDs = wayIDs
			} else {
				sg.adjacency[u][i].Parallel = append(sg.adjacency[u][i].Parallel, weight)
			}
			return
		}
	}
	sg.adjacency[u] = append(sg.adjacency[u], simplifiedEdge{to: v, Weight: weight, Path: path, WayIDs: wayIDs})
}

// VertexCount returns the simplified graph's |V|.
func (sg *SimplifiedGraph) VertexCount() int { return len(sg.nodeOf) }
