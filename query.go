package osmgraph

import "math"

// NearestNode implements §6's `nearest_node`: returns the closest
// retained node to query and its great-circle distance in km.
func NearestNode(g *Graph, query GeoLocation) (NodeID, float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, _, ok := g.kd.nearest(query, nil)
	if !ok {
		return 0, 0, false
	}
	id := g.nodeOf[idx]
	return id, haversineKM(query, g.nodes[id].Location), true
}

// NearestNodeExcluding behaves like NearestNode but skips excludeID
// (§4.6: "used to exclude the origin node when querying from a known
// node").
func NearestNodeExcluding(g *Graph, query GeoLocation, excludeID NodeID) (NodeID, float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	excludeIdx, hasExclude := g.vertexOf[excludeID]
	filter := func(v int) bool { return !hasExclude || v != excludeIdx }
	idx, _, ok := g.kd.nearest(query, filter)
	if !ok {
		return 0, 0, false
	}
	id := g.nodeOf[idx]
	return id, haversineKM(query, g.nodes[id].Location), true
}

// NodeDistance pairs a node id with a distance, returned by NearestNodes.
type NodeDistance struct {
	NodeID   NodeID
	Distance float64
}

// NearestNodes implements §6's `nearest_nodes`: top-k closest nodes.
func NearestNodes(g *Graph, query GeoLocation, k int) []NodeDistance {
	g.mu.RLock()
	defer g.mu.RUnlock()
	candidates := g.kd.kNearest(query, k, nil)
	out := make([]NodeDistance, len(candidates))
	for i, c := range candidates {
		id := g.nodeOf[c.vertex]
		out[i] = NodeDistance{NodeID: id, Distance: haversineKM(query, g.nodes[id].Location)}
	}
	return out
}

// EdgePoint is a position along a way, expressed as the two consecutive
// nodes bracketing it and the fractional position between them (the
// glossary's formal definition: first-node, second-node, fraction in
// [0,1]), plus the projected geographic location for convenience.
type EdgePoint struct {
	N1, N2   NodeID
	Fraction float64
	Location GeoLocation
}

// WayDistance pairs a way id, the distance to it, and the closest
// point on its geometry (§6: `nearest_way`'s "edge_point").
type WayDistance struct {
	WayID     WayID
	Distance  float64
	EdgePoint EdgePoint
}

// NearestWay implements §6's `nearest_way`. When searchRadius is <= 0,
// it defaults to the distance to the nearest node, per spec.
func NearestWay(g *Graph, query GeoLocation, searchRadius float64) (*WayDistance, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if searchRadius <= 0 {
		_, nodeDist, ok := g.kd.nearest(query, nil)
		if !ok {
			return nil, false
		}
		searchRadius = nodeDist
		if searchRadius <= 0 {
			searchRadius = epsilon
		}
	}

	candidates := wayCandidatesWithinRadius(g, query, searchRadius)
	var best *WayDistance
	for _, wid := range candidates {
		w := g.ways[wid]
		dist, ep := closestPointOnWay(g, w, query)
		if best == nil || dist < best.Distance {
			best = &WayDistance{WayID: wid, Distance: dist, EdgePoint: ep}
		}
	}
	return best, best != nil
}

// NearestWays implements §6's `nearest_ways`: all ways whose bounding
// box intersects the cube of side 2*radius around query.
func NearestWays(g *Graph, query GeoLocation, searchRadius float64) []WayID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return wayCandidatesWithinRadius(g, query, searchRadius)
}

func wayCandidatesWithinRadius(g *Graph, query GeoLocation, radius float64) []WayID {
	c := geoToCartesian(query)
	min := [3]float64{c.x - radius, c.y - radius, c.z - radius}
	max := [3]float64{c.x + radius, c.y + radius, c.z + radius}
	return g.rt.intersecting(min, max)
}

// closestPointOnWay projects query onto the nearest segment of w's
// polyline and returns the great-circle distance in km plus the
// EdgePoint identifying that segment (P9: callers need the consecutive
// node pair, not just the projected location).
func closestPointOnWay(g *Graph, w *Way, query GeoLocation) (float64, EdgePoint) {
	best := math.Inf(1)
	var bestEP EdgePoint
	for i := 0; i+1 < len(w.Nodes); i++ {
		n1, n2 := w.Nodes[i], w.Nodes[i+1]
		a := g.nodes[n1].Location
		b := g.nodes[n2].Location
		pt, t := closestPointOnSegment(a, b, query)
		d := haversineKM(query, pt)
		if d < best {
			best = d
			bestEP = EdgePoint{N1: n1, N2: n2, Fraction: t, Location: pt}
		}
	}
	return best, bestEP
}

// closestPointOnSegment approximates the closest point on segment a-b
// to p by treating lon/lat degrees as planar x/y coordinates, with no
// cos(latitude) scaling of longitude. It also returns the interpolation
// fraction t in [0,1] along a-b.
func closestPointOnSegment(a, b, p GeoLocation) (GeoLocation, float64) {
	ax, ay := a.Lon, a.Lat
	bx, by := b.Lon, b.Lat
	px, py := p.Lon, p.Lat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return GeoLocation{Lat: ay + t*dy, Lon: ax + t*dx}, t
}

// Subgraph implements §6's `osm_subgraph`: a Graph including all ways
// any of whose nodes lies in vertexSubset.
func Subgraph(g *Graph, vertexSubset []NodeID) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	subset := make(map[NodeID]struct{}, len(vertexSubset))
	for _, id := range vertexSubset {
		subset[id] = struct{}{}
	}

	ways := make(map[WayID]*Way)
	for id, w := range g.ways {
		for _, n := range w.Nodes {
			if _, ok := subset[n]; ok {
				ways[id] = w
				break
			}
		}
	}
	nodeIDs := make(map[NodeID]struct{})
	for _, w := range ways {
		for _, n := range w.Nodes {
			nodeIDs[n] = struct{}{}
		}
	}
	nodes := make(map[NodeID]*Node, len(nodeIDs))
	for id := range nodeIDs {
		nodes[id] = g.nodes[id]
	}

	restrictions := make(map[RestrictionID]*Restriction)
	for id, r := range g.restrictions {
		if _, ok := ways[r.FromWay]; !ok {
			continue
		}
		if _, ok := ways[r.ToWay]; !ok {
			continue
		}
		viaKept := true
		for _, wid := range r.ViaWays {
			if _, ok := ways[wid]; !ok {
				viaKept = false
				break
			}
		}
		if !viaKept {
			continue
		}
		restrictions[id] = r
	}

	sub := &Graph{
		networkType:    g.networkType,
		weightType:     g.weightType,
		graphType:      g.graphType,
		cfg:            g.cfg,
		nodes:          nodes,
		ways:           ways,
		restrictions:   restrictions,
		edgeWay:        make(map[[2]int]WayID),
		dijkstraStates: make(map[int]*dijkstraState),
	}
	assignVertexIndex(sub)
	buildAdjacency(sub, ways)
	computeWeights(sub)
	sub.indexedRestrictions = indexRestrictions(sub, restrictions)
	sub.kd = buildKDTree(sub)
	sub.rt = buildRTree(sub)
	return sub
}
