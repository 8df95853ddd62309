package osmgraph

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// mphToKMH is the mph->km/h conversion factor used when a maxspeed
// fragment carries an explicit "mph" suffix (§4.1).
const mphToKMH = 1.60934

// tagDelimiters is the delimiter class §4.1 specifies for splitting a
// multi-value maxspeed/lanes string, ported from the teacher's regexp
// based splitting in way_raw.go (there: separate km/h and mph regexes;
// here: one generic delimiter-driven split, since §4.1 wants an average
// across arbitrarily delimited fragments, not just first-match).
const tagDelimiters = "+^:;,|-"

func splitOnDelimiters(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tagDelimiters, r)
	})
}

// numericPrefix extracts the leading numeric run of a string fragment
// (optional sign, digits, optional decimal point and digits), mirroring
// the teacher's lanesRegExp `\d+\.?\d*`.
func numericPrefix(s string) string {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	sawDigit := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigit = true
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			sawDigit = true
		}
		if sawDigit {
			i = j
		}
	}
	if !sawDigit {
		return ""
	}
	if s[0] == '-' || s[0] == '+' {
		return s[:i]
	}
	_ = start
	return s[:i]
}

// normalizeMaxspeed implements §4.1's maxspeed algorithm against the raw
// tag value (which may be absent, an int/float, or a string). highwayClass
// is used for the default lookup when absent or unparseable.
func normalizeMaxspeed(raw interface{}, highwayClass string, cfg configSnapshot) (int, error) {
	if raw == nil {
		return cfg.maxspeedFor(highwayClass), nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v + 0.5), nil
	case string:
		return parseMaxspeedString(v, highwayClass, cfg)
	default:
		return 0, errors.Wrapf(ErrBadTag, "maxspeed: unsupported type %T", raw)
	}
}

func parseMaxspeedString(s string, highwayClass string, cfg configSnapshot) (int, error) {
	if idx := strings.Index(s, "conditional"); idx >= 0 {
		s = s[:idx]
	}
	fragments := splitOnDelimiters(s)
	var sum float64
	var count int
	for _, frag := range fragments {
		frag = strings.TrimSpace(frag)
		isMPH := strings.Contains(frag, "mph")
		numStr := numericPrefix(frag)
		if numStr == "" {
			continue
		}
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		if isMPH {
			val *= mphToKMH
		}
		sum += val
		count++
	}
	if count == 0 {
		return cfg.maxspeedFor(highwayClass), nil
	}
	return int(sum/float64(count) + 0.5), nil
}

// normalizeLanes implements §4.1's lanes algorithm.
func normalizeLanes(raw interface{}, highwayClass string, cfg configSnapshot) (int, error) {
	if raw == nil {
		return cfg.lanesFor(highwayClass), nil
	}
	switch v := raw.(type) {
	case int:
		return max1(v), nil
	case int64:
		return max1(int(v)), nil
	case float64:
		return max1(int(v + 0.5)), nil
	case string:
		return parseLanesString(v, highwayClass, cfg)
	default:
		return 0, errors.Wrapf(ErrBadTag, "lanes: unsupported type %T", raw)
	}
}

func parseLanesString(s string, highwayClass string, cfg configSnapshot) (int, error) {
	fragments := splitOnDelimiters(s)
	var sum float64
	var count int
	for _, frag := range fragments {
		numStr := numericPrefix(frag)
		if numStr == "" {
			continue
		}
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		sum += val
		count++
	}
	if count == 0 {
		return cfg.lanesFor(highwayClass), nil
	}
	return max1(int(sum/float64(count) + 0.5)), nil
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

var onewayTruthy = map[string]struct{}{
	"yes": {}, "true": {}, "1": {}, "-1": {},
}

var onewayFalsy = map[string]struct{}{
	"no": {}, "false": {}, "0": {},
}

// normalizeOneway implements §4.1's oneway algorithm. junction is the
// way's raw `junction` tag value; defaultOneway is consulted when the
// tag is absent and junction doesn't force one-way.
func normalizeOneway(raw interface{}, junction string, defaultOneway bool) (oneway, reverse bool, err error) {
	if _, ok := junctionOneway[junction]; ok {
		return true, reverseFromRaw(raw), nil
	}
	if raw == nil {
		return defaultOneway, false, nil
	}
	switch v := raw.(type) {
	case string:
		if _, ok := onewayTruthy[v]; ok {
			return true, v == "-1", nil
		}
		if _, ok := onewayFalsy[v]; ok {
			return false, false, nil
		}
		return defaultOneway, false, nil
	case int:
		if v == 1 || v == -1 {
			return true, v == -1, nil
		}
		if v == 0 {
			return false, false, nil
		}
		return defaultOneway, false, nil
	default:
		return false, false, errors.Wrapf(ErrBadTag, "oneway: unsupported type %T", raw)
	}
}

func reverseFromRaw(raw interface{}) bool {
	switch v := raw.(type) {
	case string:
		return v == "-1"
	case int:
		return v == -1
	default:
		return false
	}
}

// highwayOnewayDefault gives the default one-way-ness by highway class
// when neither the `oneway` tag nor `junction` decides it; only
// motorways default to one-way (grounded in the teacher's
// onewayDefaultByLink table, osm_prepare_ways.go / link_type.go).
func highwayOnewayDefault(highwayClass string) bool {
	return highwayClass == "motorway" || highwayClass == "motorway_link"
}
