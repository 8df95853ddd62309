package osmgraph

// RestrictionID is the OSM relation identifier backing a Restriction.
type RestrictionID int64

// relationMemberKind distinguishes a restriction member's OSM type;
// only "way" and "node" ever appear (§4.4 validity check).
type relationMemberKind uint8

const (
	memberWay relationMemberKind = iota
	memberNode
)

// relationMember is one raw member of an OSM restriction relation,
// ported from the teacher's restrictionComponent (expanded_edge.go);
// renamed since it's no longer scoped to "expanded edge" bookkeeping.
type relationMember struct {
	id   int64
	kind relationMemberKind
	role string // "from", "to", "via"
}

// restrictionForm distinguishes the two encodings §4.4 names.
type restrictionForm uint8

const (
	formExclusion restrictionForm = iota // "no_..."
	formExclusive                        // "only_..."
)

// Restriction is a validated OSM turn restriction relation (§3, §4.4).
type Restriction struct {
	ID   RestrictionID
	Type string // raw `restriction` tag value, e.g. "no_left_turn"
	Form restrictionForm

	FromWay WayID
	ToWay   WayID

	// Exactly one of ViaNode/ViaWays is set, per the §4.4 validity check.
	ViaNode NodeID
	ViaWays []WayID
}

func (r *Restriction) isViaNode() bool {
	return len(r.ViaWays) == 0
}

// onlyStraightOn reports whether this is the only_straight_on exclusive
// form, which needs turn-angle geometry to find its alternatives (§4.4).
func (r *Restriction) onlyStraightOn() bool {
	return r.Form == formExclusive && r.Type == "only_straight_on"
}
