package osmgraph

// HighwayType enumerates the `highway=*` values the normalizer and graph
// builder recognize as road classes. It exists purely for validated,
// typo-free map keys into the Config default tables (§6); the tables
// themselves are keyed by the string form, matching §6's requirement
// that "maxspeeds"/"lanes" be a mapping from highway class *string*.
type HighwayType uint16

const (
	HighwayMotorway = HighwayType(iota + 1)
	HighwayMotorwayLink
	HighwayTrunk
	HighwayTrunkLink
	HighwayPrimary
	HighwayPrimaryLink
	HighwaySecondary
	HighwaySecondaryLink
	HighwayTertiary
	HighwayTertiaryLink
	HighwayResidential
	HighwayResidentialLink
	HighwayLivingStreet
	HighwayService
	HighwayCycleway
	HighwayFootway
	HighwayPedestrian
	HighwayTrack
	HighwayUnclassified
)

func (h HighwayType) String() string {
	return [...]string{
		"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
		"secondary", "secondary_link", "tertiary", "tertiary_link", "residential",
		"residential_link", "living_street", "service", "cycleway", "footway",
		"pedestrian", "track", "unclassified",
	}[h-1]
}

var highwayTypes = map[string]HighwayType{
	"motorway":         HighwayMotorway,
	"motorway_link":    HighwayMotorwayLink,
	"trunk":            HighwayTrunk,
	"trunk_link":       HighwayTrunkLink,
	"primary":          HighwayPrimary,
	"primary_link":     HighwayPrimaryLink,
	"secondary":        HighwaySecondary,
	"secondary_link":   HighwaySecondaryLink,
	"tertiary":         HighwayTertiary,
	"tertiary_link":    HighwayTertiaryLink,
	"residential":      HighwayResidential,
	"residential_link": HighwayResidentialLink,
	"living_street":    HighwayLivingStreet,
	"service":          HighwayService,
	"cycleway":         HighwayCycleway,
	"footway":          HighwayFootway,
	"pedestrian":       HighwayPedestrian,
	"track":            HighwayTrack,
	"unclassified":     HighwayUnclassified,
}

// isKnownHighwayClass reports whether str is a highway class the
// normalizer recognizes; unrecognized classes fall back to "other" in
// every Config default table.
func isKnownHighwayClass(str string) bool {
	_, ok := highwayTypes[str]
	return ok
}

// negligibleHighwayTags are highway classes that never represent a
// traversable road/rail segment for any network type (construction,
// proposed, etc); the builder drops these ways outright (§4.2 step 1).
var negligibleHighwayTags = map[string]struct{}{
	"path":         {},
	"construction": {},
	"proposed":     {},
	"raceway":      {},
	"bridleway":    {},
	"rest_area":    {},
	"road":         {},
	"abandoned":    {},
	"planned":      {},
	"trailhead":    {},
	"stairs":       {},
	"dismantled":   {},
	"disused":      {},
	"razed":        {},
	"corridor":     {},
}

// junctionOneway are `junction=*` values that force a way one-way
// regardless of its `oneway` tag (§4.1: "a way with junction=roundabout
// is one-way regardless").
var junctionOneway = map[string]struct{}{
	"roundabout": {},
	"circular":   {},
}
