package osmgraph

import (
	"log/slog"
	"math"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// buildRestrictions validates raw restriction relations against §4.4's
// validity check and turns the survivors into Restriction values. Ways
// is the already-filtered retained-way set; a restriction referencing a
// way that didn't survive network-type filtering is dropped, matching
// §3's lifecycle note ("deleted when any of their from/to/via ways are
// removed").
func buildRestrictions(relations []*osm.Relation, ways map[WayID]*Way, vertexOf map[NodeID]int) (map[RestrictionID]*Restriction, error) {
	out := make(map[RestrictionID]*Restriction, len(relations))
	logger := slog.Default()
	for _, rel := range relations {
		r, ok := validateRestriction(rel, ways)
		if !ok {
			err := errors.Wrapf(ErrBadRestriction, "relation %d", rel.ID)
			logger.Debug("dropping invalid restriction", "relation_id", rel.ID, "error", err.Error())
			continue
		}
		out[r.ID] = r
	}
	return out, nil
}

func validateRestriction(rel *osm.Relation, ways map[WayID]*Way) (*Restriction, bool) {
	restrictionTag, ok := rel.TagMap()["restriction"]
	if !ok || restrictionTag == "" {
		return nil, false
	}

	var from, to *relationMember
	var viaNodes []relationMember
	var viaWays []relationMember

	for _, m := range rel.Members {
		kind := memberWay
		if m.Type == osm.TypeNode {
			kind = memberNode
		}
		mem := relationMember{id: int64(m.Ref), kind: kind, role: m.Role}
		switch m.Role {
		case "from":
			if from != nil {
				return nil, false
			}
			from = &mem
		case "to":
			if to != nil {
				return nil, false
			}
			to = &mem
		case "via":
			if kind == memberNode {
				viaNodes = append(viaNodes, mem)
			} else {
				viaWays = append(viaWays, mem)
			}
		}
	}

	if from == nil || to == nil {
		return nil, false
	}
	if from.kind != memberWay || to.kind != memberWay {
		return nil, false
	}
	fromWay, ok := ways[WayID(from.id)]
	if !ok {
		return nil, false
	}
	toWay, ok := ways[WayID(to.id)]
	if !ok || toWay.ID == fromWay.ID {
		return nil, false
	}

	r := &Restriction{
		ID:      RestrictionID(rel.ID),
		Type:    restrictionTag,
		FromWay: fromWay.ID,
		ToWay:   toWay.ID,
	}
	if restrictionIsExclusive(restrictionTag) {
		r.Form = formExclusive
	} else if !restrictionIsExclusion(restrictionTag) {
		return nil, false
	}

	switch {
	case len(viaNodes) == 1 && len(viaWays) == 0:
		viaNode := NodeID(viaNodes[0].id)
		if !nodeIsTrailing(fromWay, viaNode) || !nodeIsTrailing(toWay, viaNode) {
			return nil, false
		}
		r.ViaNode = viaNode
	case len(viaWays) >= 1 && len(viaNodes) == 0:
		chain, ok := orderViaChain(viaWays, ways, fromWay, toWay)
		if !ok {
			return nil, false
		}
		r.ViaWays = chain
	default:
		return nil, false
	}

	return r, true
}

func restrictionIsExclusion(tag string) bool {
	return hasPrefix(tag, "no_")
}

func restrictionIsExclusive(tag string) bool {
	return hasPrefix(tag, "only_")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func nodeIsTrailing(w *Way, n NodeID) bool {
	return w.SourceNode() == n || w.TargetNode() == n
}

// orderViaChain validates that the via ways join end to end into a
// single chain whose endpoints are trailing nodes of fromWay and toWay,
// and returns them ordered from the from-adjacent end to the
// to-adjacent end (§4.4).
func orderViaChain(members []relationMember, ways map[WayID]*Way, fromWay, toWay *Way) ([]WayID, bool) {
	ids := make([]WayID, len(members))
	for i, m := range members {
		ids[i] = WayID(m.id)
	}
	remaining := make(map[WayID]*Way, len(ids))
	for _, id := range ids {
		w, ok := ways[id]
		if !ok {
			return nil, false
		}
		remaining[id] = w
	}

	// Find the chain end touching fromWay's trailing nodes.
	var chain []WayID
	var cur *Way
	var curEnd NodeID
	for id, w := range remaining {
		if w.SourceNode() == fromWay.SourceNode() || w.SourceNode() == fromWay.TargetNode() {
			cur, curEnd = w, w.TargetNode()
		} else if w.TargetNode() == fromWay.SourceNode() || w.TargetNode() == fromWay.TargetNode() {
			cur, curEnd = w, w.SourceNode()
		} else {
			continue
		}
		chain = append(chain, id)
		delete(remaining, id)
		break
	}
	if cur == nil {
		return nil, false
	}
	for len(remaining) > 0 {
		found := false
		for id, w := range remaining {
			if w.SourceNode() == curEnd {
				chain = append(chain, id)
				curEnd = w.TargetNode()
				delete(remaining, id)
				found = true
				break
			}
			if w.TargetNode() == curEnd {
				chain = append(chain, id)
				curEnd = w.SourceNode()
				delete(remaining, id)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	if curEnd != toWay.SourceNode() && curEnd != toWay.TargetNode() {
		return nil, false
	}
	return chain, true
}

// outgoingAlong returns the neighbor(s) of x along way w reachable by a
// directed edge x->neighbor, honoring one-way/reverse-way (§4.4's
// "adjacency rule"). At an interior, non-oneway position it returns
// both neighbors. x's own index is used directly rather than
// re-searched per neighbor, so a way that revisits x (a loop) can't be
// confused about which occurrence is meant.
func outgoingAlong(w *Way, x NodeID) []NodeID {
	var out []NodeID
	for i, n := range w.Nodes {
		if n != x {
			continue
		}
		if i > 0 && edgeDirectionExists(w, false) {
			out = append(out, w.Nodes[i-1])
		}
		if i+1 < len(w.Nodes) && edgeDirectionExists(w, true) {
			out = append(out, w.Nodes[i+1])
		}
	}
	return out
}

// incomingAlong is outgoingAlong's mirror: the neighbor(s) of x reachable
// by a directed edge neighbor->x.
func incomingAlong(w *Way, x NodeID) []NodeID {
	var out []NodeID
	for i, n := range w.Nodes {
		if n != x {
			continue
		}
		if i > 0 && edgeDirectionExists(w, true) {
			out = append(out, w.Nodes[i-1])
		}
		if i+1 < len(w.Nodes) && edgeDirectionExists(w, false) {
			out = append(out, w.Nodes[i+1])
		}
	}
	return out
}

// edgeDirectionExists reports whether the graph built an edge running
// from the lower node-list index to the higher one (lowToHigh) or the
// reverse, for any consecutive pair on w (§4.2 step 4: reverseway flips
// which node-list direction is "forward", oneway then keeps only that
// direction; the answer is the same for every consecutive pair on a
// given way, since Oneway/ReverseWay are whole-way properties).
func edgeDirectionExists(w *Way, lowToHigh bool) bool {
	if !w.Oneway {
		return true
	}
	return lowToHigh != w.ReverseWay
}

// indexRestrictions implements §4.4's encoding step, producing the
// via-vertex-index -> sequence mapping the routing core's cost
// adjustment consults.
func indexRestrictions(g *Graph, restrictions map[RestrictionID]*Restriction) map[int][][]int {
	out := make(map[int][][]int)
	add := func(seq []int) {
		if len(seq) < 2 {
			return
		}
		key := seq[1] // the via-vertex RestrictionCostAdjustment is standing on
		out[key] = append(out[key], seq)
	}

	for _, r := range restrictions {
		fromWay := g.ways[r.FromWay]
		toWay := g.ways[r.ToWay]
		if r.isViaNode() {
			indexViaNodeRestriction(g, r, fromWay, toWay, add)
		} else {
			indexViaWayRestriction(g, r, fromWay, toWay, add)
		}
	}
	return out
}

func indexViaNodeRestriction(g *Graph, r *Restriction, fromWay, toWay *Way, add func([]int)) {
	viaIdx, ok := g.vertexOf[r.ViaNode]
	if !ok {
		return
	}
	fromIdx, ok := g.vertexOf[fromAdjacentNode(fromWay, r.ViaNode)]
	if !ok {
		return
	}

	if r.Form == formExclusion {
		toIdx, ok := g.vertexOf[toAdjacentNode(toWay, r.ViaNode)]
		if !ok {
			return
		}
		add([]int{toIdx, viaIdx, fromIdx})
		return
	}

	// Exclusive ("only_..."): forbid every alternative way through the
	// via-node except fromWay and the permitted toWay.
	for _, w := range g.ways {
		if !wayTouchesNode(w, r.ViaNode) || w.ID == fromWay.ID || w.ID == toWay.ID {
			continue
		}
		for _, alt := range outgoingAlong(w, r.ViaNode) {
			altIdx, ok := g.vertexOf[alt]
			if !ok {
				continue
			}
			add([]int{altIdx, viaIdx, fromIdx})
		}
	}
	if r.onlyStraightOn() && !toWay.Oneway {
		candidates := outgoingAlong(toWay, r.ViaNode)
		straight := chooseStraightContinuation(g, r.ViaNode, fromAdjacentNode(fromWay, r.ViaNode), candidates)
		for _, alt := range candidates {
			if alt == straight {
				continue
			}
			altIdx, ok := g.vertexOf[alt]
			if !ok {
				continue
			}
			add([]int{altIdx, viaIdx, fromIdx})
		}
	}
}

// chooseStraightContinuation implements §13's only_straight_on decision:
// among candidates incident to the via node along toWay, the straight
// continuation is the one most nearly collinear with the bearing coming
// in from incomingFrom, independent of which side of the junction
// fromWay approaches from.
func chooseStraightContinuation(g *Graph, via, incomingFrom NodeID, candidates []NodeID) NodeID {
	if len(candidates) <= 1 {
		if len(candidates) == 1 {
			return candidates[0]
		}
		return via
	}
	viaLoc := g.nodes[via].Location
	inDX, inDY := bearingVector(g.nodes[incomingFrom].Location, viaLoc)
	best := candidates[0]
	bestAngle := math.Inf(1)
	for _, c := range candidates {
		outDX, outDY := bearingVector(viaLoc, g.nodes[c].Location)
		angle := math.Abs(turnAngle(inDX, inDY, outDX, outDY))
		if angle < bestAngle {
			bestAngle = angle
			best = c
		}
	}
	return best
}

func indexViaWayRestriction(g *Graph, r *Restriction, fromWay, toWay *Way, add func([]int)) {
	chainIdx := make([]int, 0, len(r.ViaWays)+1)
	firstViaWay := g.ways[r.ViaWays[0]]
	fromJunction := commonTrailingNode(fromWay, firstViaWay)
	fromIdx, ok := g.vertexOf[fromAdjacentNode(fromWay, fromJunction)]
	if !ok {
		return
	}
	cur := fromJunction
	for _, wid := range r.ViaWays {
		w := g.ways[wid]
		nodes := w.Nodes
		if w.SourceNode() != cur {
			nodes = make([]NodeID, len(w.Nodes))
			for i, n := range w.Nodes {
				nodes[len(nodes)-1-i] = n
			}
		}
		for _, n := range nodes {
			idx, ok := g.vertexOf[n]
			if ok {
				chainIdx = appendUnique(chainIdx, idx)
			}
		}
		cur = nodes[len(nodes)-1]
	}

	lastViaWay := g.ways[r.ViaWays[len(r.ViaWays)-1]]
	toJunction := commonTrailingNode(toWay, lastViaWay)
	toIdx, ok := g.vertexOf[toAdjacentNode(toWay, toJunction)]
	if !ok {
		return
	}

	seq := make([]int, 0, len(chainIdx)+2)
	seq = append(seq, toIdx)
	// chainIdx currently runs from-end -> to-end; reverse so the
	// sequence walks to-end -> from-end as §4.4 requires.
	for i := len(chainIdx) - 1; i >= 0; i-- {
		seq = append(seq, chainIdx[i])
	}
	seq = append(seq, fromIdx)
	add(seq)
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func commonTrailingNode(a, b *Way) NodeID {
	if a.SourceNode() == b.SourceNode() || a.SourceNode() == b.TargetNode() {
		return a.SourceNode()
	}
	return a.TargetNode()
}

// fromAdjacentNode is the node on fromWay you'd arrive at via from,
// i.e. the node with a directed edge into via.
func fromAdjacentNode(fromWay *Way, via NodeID) NodeID {
	for _, n := range incomingAlong(fromWay, via) {
		return n
	}
	return via
}

// toAdjacentNode is the node you'd reach by continuing from via onto
// toWay, i.e. the node reachable by a directed edge out of via.
func toAdjacentNode(toWay *Way, via NodeID) NodeID {
	for _, n := range outgoingAlong(toWay, via) {
		return n
	}
	return via
}

func wayTouchesNode(w *Way, n NodeID) bool {
	for _, x := range w.Nodes {
		if x == n {
			return true
		}
	}
	return false
}
