package osmgraph

// NetworkType selects which ways the builder retains (§4.2, §6). Unlike
// the teacher's AgentType (auto/bike/walk only), this is the full set
// §6 names: {drive, drive_service, walk, bike, all, all_private, none,
// rail, drive_mainroads}.
type NetworkType uint16

const (
	NetworkDrive = NetworkType(iota + 1)
	NetworkDriveService
	NetworkWalk
	NetworkBike
	NetworkAll
	NetworkAllPrivate
	NetworkNone
	NetworkRail
	NetworkDriveMainroads
)

func (n NetworkType) String() string {
	return [...]string{
		"drive", "drive_service", "walk", "bike", "all", "all_private",
		"none", "rail", "drive_mainroads",
	}[n-1]
}

var networkTypeNames = map[string]NetworkType{
	"drive":           NetworkDrive,
	"drive_service":   NetworkDriveService,
	"walk":            NetworkWalk,
	"bike":            NetworkBike,
	"all":             NetworkAll,
	"all_private":     NetworkAllPrivate,
	"none":            NetworkNone,
	"rail":            NetworkRail,
	"drive_mainroads": NetworkDriveMainroads,
}

func parseNetworkType(s string) (NetworkType, error) {
	if nt, ok := networkTypeNames[s]; ok {
		return nt, nil
	}
	return 0, newUnknownOptionError("network_type", s)
}

// exclusionRule is one (tag-key, disallowed-value-set) pair (§6). A way
// is excluded from a network type if ANY of its rules matches: the tag
// is present and its value is in the set.
type exclusionRule struct {
	tagKey   string
	disallow map[string]struct{}
}

func rule(tagKey string, values ...string) exclusionRule {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return exclusionRule{tagKey: tagKey, disallow: set}
}

// networkExclusions holds, for every NetworkType, the conjunction-of-
// exclusions table from §6, adapted from the teacher's per-AgentType
// include/exclude access tables (access_type.go, agent_type.go). The
// teacher only filtered auto/bike/walk by ACCESS_* tag roles; here each
// rule is flattened to a literal tag key since NetworkType no longer
// distinguishes "highway" vs "motor_vehicle" etc. as an enum.
var networkExclusions = map[NetworkType][]exclusionRule{
	NetworkDrive: {
		rule("highway", "cycleway", "footway", "pedestrian", "steps", "track",
			"corridor", "elevator", "escalator", "service", "living_street"),
		rule("motor_vehicle", "no"),
		rule("motorcar", "no"),
		rule("access", "private"),
	},
	NetworkDriveService: {
		rule("highway", "cycleway", "footway", "pedestrian", "steps", "track",
			"corridor", "elevator", "escalator", "living_street"),
		rule("motor_vehicle", "no"),
		rule("motorcar", "no"),
		rule("access", "private"),
	},
	NetworkDriveMainroads: {
		rule("highway", "cycleway", "footway", "pedestrian", "steps", "track",
			"corridor", "elevator", "escalator", "service", "living_street",
			"residential", "residential_link", "unclassified"),
		rule("motor_vehicle", "no"),
		rule("motorcar", "no"),
		rule("access", "private"),
	},
	NetworkBike: {
		rule("highway", "footway", "steps", "corridor", "elevator", "escalator",
			"motorway", "motorway_link"),
		rule("bicycle", "no"),
		rule("service", "private"),
		rule("access", "private"),
	},
	NetworkWalk: {
		rule("highway", "cycleway", "motorway", "motorway_link"),
		rule("foot", "no"),
		rule("service", "private"),
		rule("access", "private"),
	},
	NetworkAll: {
		rule("access", "private"),
	},
	NetworkAllPrivate: {},
	NetworkRail: {
		rule("railway", "construction", "proposed", "abandoned", "disused", "razed"),
		rule("access", "private"),
	},
	NetworkNone: {
		// Excludes ways whose highway or railway value is one of those
		// listed below; ways with any other highway value are kept.
		rule("highway", "motorway", "motorway_link", "trunk", "trunk_link",
			"primary", "primary_link", "secondary", "secondary_link",
			"tertiary", "tertiary_link", "residential", "residential_link",
			"living_street", "service", "cycleway", "footway", "pedestrian",
			"track", "unclassified"),
		rule("railway", "rail", "light_rail", "subway", "tram", "narrow_gauge", "monorail"),
	},
}

// excludedFrom reports whether tags fail any exclusion rule for nt.
func excludedFrom(nt NetworkType, tags map[string]string) bool {
	for _, r := range networkExclusions[nt] {
		v, ok := tags[r.tagKey]
		if !ok {
			continue
		}
		if _, disallowed := r.disallow[v]; disallowed {
			return true
		}
	}
	return false
}

// requiresRailway reports whether nt selects ways by `railway` instead
// of `highway` (§4.2 step 1: "if its tags carry highway (or railway for
// rail networks)").
func requiresRailway(nt NetworkType) bool {
	return nt == NetworkRail
}
