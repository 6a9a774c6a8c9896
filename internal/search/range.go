// Package search implements the observation filter and ranking engine.
//
// It is a pure, synchronous pass over an in-memory snapshot: no I/O, no shared
// state, and no failure mode for well-formed input — malformed height/year
// tokens degrade to unknown and deactivate that sub-constraint instead of
// erroring.
package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unknown marks a height/year that could not be resolved. It must never take
// part in a comparison; callers check Range.Known first.
const Unknown = -1

// Sentinels for the boundary buckets offered by the UI. Indeterminate buckets
// ("variable", "unknown", "placeholder") resolve to Unknown instead.
const (
	underShortInches = 57 // just below 4'10"
	overTallInches   = 80 // 6'8"
)

var heightToken = regexp.MustCompile(`^(\d+)ft(\d{1,2})$`)

// Range is a closed integer interval. Min == Max for single values;
// Min == Max == Unknown when the underlying token could not be resolved.
type Range struct {
	Min int
	Max int
}

var unknownRange = Range{Unknown, Unknown}

// Known reports whether the range holds real comparable values.
func (r Range) Known() bool {
	return r.Min != Unknown && r.Max != Unknown
}

// Overlaps reports whether two closed intervals share at least one point.
func (r Range) Overlaps(o Range) bool {
	return !(r.Max < o.Min || r.Min > o.Max)
}

// ParseHeight converts a single height token to inches, or Unknown.
//
//	"5ft10"      -> 70
//	"under4ft10" -> 57
//	"over6ft8"   -> 80
//	"variable", "unknown", "placeholder", "" or anything unmatched -> Unknown
func ParseHeight(s string) int {
	switch s {
	case "", "unknown", "placeholder", "variable":
		return Unknown
	case "under4ft10":
		return underShortInches
	case "over6ft8":
		return overTallInches
	}

	m := heightToken.FindStringSubmatch(s)
	if m == nil {
		return Unknown
	}
	feet, _ := strconv.Atoi(m[1])
	inches, _ := strconv.Atoi(m[2])
	return feet*12 + inches
}

// ParseHeightRange resolves a height token to an inches interval. Dash-joined
// tokens ("4ft10-5ft2") become a true range; single tokens collapse to
// [v, v]. If one side of a dash-joined token is unresolvable the known side
// is used for both ends; if both are, the range is unknown.
func ParseHeightRange(s string) Range {
	if lo, hi, ok := splitRangeToken(s); ok {
		return makeRange(ParseHeight(lo), ParseHeight(hi))
	}
	v := ParseHeight(s)
	return makeRange(v, v)
}

// ParseYear converts a bare year string to an int, or Unknown.
func ParseYear(s string) int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y <= 0 {
		return Unknown
	}
	return y
}

// ParseYearRange resolves a year token: "2018" -> [2018, 2018],
// "2015-2020" -> [2015, 2020], anything else unknown.
func ParseYearRange(s string) Range {
	if lo, hi, ok := splitRangeToken(s); ok {
		return makeRange(ParseYear(lo), ParseYear(hi))
	}
	y := ParseYear(s)
	return makeRange(y, y)
}

// queryRange builds the interval a query constrains on, filling unspecified
// bounds with the type's natural extremes. min/max are already-resolved
// values with Unknown meaning "bound not given".
func queryRange(min, max int) Range {
	r := Range{Min: 0, Max: math.MaxInt}
	if min != Unknown {
		r.Min = min
	}
	if max != Unknown {
		r.Max = max
	}
	return r
}

func splitRangeToken(s string) (lo, hi string, ok bool) {
	i := strings.Index(s, "-")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

func makeRange(lo, hi int) Range {
	if lo == Unknown {
		lo = hi
	}
	if hi == Unknown {
		hi = lo
	}
	if lo == Unknown || hi == Unknown {
		return unknownRange
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{lo, hi}
}
