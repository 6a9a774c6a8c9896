package search

import (
	"strings"

	"github.com/your-org/sightline/internal/models"
)

// Matching policy for records missing a constrained attribute: the record
// passes. Most observations are partially filled in, so excluding them would
// make narrow searches return nothing; scoring compensates by only rewarding
// records whose value actually matched. This recall-favoring policy is
// deliberate and applied uniformly to range fields, scalar fields, and plates.

// matches reports whether the record passes every active filter category.
// Categories combine with AND; scoring is a separate pass (see score.go).
func matches(q *Query, o *models.Observation) bool {
	if q.Text != "" && countTextHits(q.Text, o) == 0 {
		return false
	}
	if !dateMatches(q.DateFrom, q.DateTo, o.Date) {
		return false
	}
	if !personMatches(q, o) {
		return false
	}
	if !vehicleMatches(q, o) {
		return false
	}
	if q.plateActive() && !plateMatches(q.LicensePlate, o.Vehicle.LicensePlate) {
		return false
	}
	return true
}

func personMatches(q *Query, o *models.Observation) bool {
	p := &q.Person

	if p.AgeRangeMin != 0 || p.AgeRangeMax != 0 {
		if !rangeSatisfied(queryRange(zeroUnknown(p.AgeRangeMin), zeroUnknown(p.AgeRangeMax)),
			personAgeRange(&o.Person)) {
			return false
		}
	}

	if p.HeightMin != "" || p.HeightMax != "" {
		if !rangeSatisfied(queryRange(ParseHeight(p.HeightMin), ParseHeight(p.HeightMax)),
			personHeightRange(&o.Person)) {
			return false
		}
	}

	if p.BuildPrimary != "" && !buildSatisfied(p.BuildPrimary, &o.Person) {
		return false
	}
	if p.BuildSecondary != "" && !buildSatisfied(p.BuildSecondary, &o.Person) {
		return false
	}

	return scalarsSatisfied(q, o)
}

func vehicleMatches(q *Query, o *models.Observation) bool {
	v := &q.Vehicle
	if v.YearMin != 0 || v.YearMax != 0 {
		if !rangeSatisfied(queryRange(zeroUnknown(v.YearMin), zeroUnknown(v.YearMax)),
			vehicleYearRange(&o.Vehicle)) {
			return false
		}
	}
	// Scalar vehicle fields are covered by scalarsSatisfied via the field table.
	return true
}

// rangeSatisfied applies the overlap test; a record with no resolvable value
// passes (permissive-missing policy).
func rangeSatisfied(query, record Range) bool {
	if !record.Known() {
		return true
	}
	return query.Overlaps(record)
}

// buildSatisfied matches a build query term against either half of the
// record's primary/secondary pair — an observer may have logged
// "medium-heavy" and a searcher may ask for either half.
func buildSatisfied(term string, p *models.PersonInfo) bool {
	primary, secondary := personBuilds(p)
	if primary == "" && secondary == "" {
		return true
	}
	return term == primary || term == secondary
}

// scalarsSatisfied walks the exact-match attribute table. Comparison is
// case-sensitive, as stored; an empty record value passes any query term.
func scalarsSatisfied(q *Query, o *models.Observation) bool {
	for _, f := range scalarFields {
		term := f.query(q)
		if term == "" {
			continue
		}
		val := f.record(o)
		if val != "" && val != term {
			return false
		}
	}
	return true
}

// plateMatches checks every non-wildcard query slot against the record's
// plate. Record slots the observer left unknown ("" or beyond the stored
// length) pass; only a known slot that differs excludes the record.
func plateMatches(query, record []string) bool {
	for i, slot := range query {
		if slot == "" || i >= len(record) || record[i] == "" {
			continue
		}
		if record[i] != slot {
			return false
		}
	}
	return true
}

// dateMatches compares ISO dates lexicographically, bounds inclusive. A
// record without a date passes only when no bound is set.
func dateMatches(from, to, date string) bool {
	if from == "" && to == "" {
		return true
	}
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// countTextHits returns how many string surfaces of the record contain term,
// case-insensitively. Zero means the record fails an active text filter; the
// count itself feeds the score.
func countTextHits(term string, o *models.Observation) int {
	needle := strings.ToLower(term)
	hits := 0
	for _, s := range textSurfaces(o) {
		if s == "" {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			hits++
		}
	}
	return hits
}
