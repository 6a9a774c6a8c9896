package search

import "github.com/your-org/sightline/internal/models"

// Score weights. Plate hits are deliberately the heaviest signal: a plate
// match is far more specific than any single descriptive attribute.
const (
	textHitWeight   = 1
	attributeWeight = 2
	dateWeight      = 1
	plateFullWeight = 21 // divided by PlateLength for the proportional part
	plateCharWeight = 2  // flat bonus per matched non-wildcard slot
)

// score rates how specifically a record (already known to pass all filters)
// matches the query. Permissive passes earn nothing — only constraints the
// record actively satisfied count, so concrete matches outrank records that
// merely weren't excluded.
func score(q *Query, o *models.Observation) int {
	s := 0

	if q.Text != "" {
		s += textHitWeight * countTextHits(q.Text, o)
	}

	if q.plateActive() {
		matched := matchedPlateSlots(q.LicensePlate, o.Vehicle.LicensePlate)
		s += plateFullWeight*matched/models.PlateLength + plateCharWeight*matched
	}

	s += attributeWeight * satisfiedAttributes(q, o)

	if q.dateActive() {
		s += dateWeight
	}

	return s
}

// matchedPlateSlots counts non-wildcard query slots that matched a known
// record slot. A record without plate data passed permissively and scores 0.
func matchedPlateSlots(query, record []string) int {
	if len(record) == 0 {
		return 0
	}
	n := 0
	for i, slot := range query {
		if slot == "" || i >= len(record) {
			continue
		}
		if record[i] == slot {
			n++
		}
	}
	return n
}

// satisfiedAttributes counts structured constraints the record actively
// matched: overlapping ranges, equal scalars, and build terms.
func satisfiedAttributes(q *Query, o *models.Observation) int {
	n := 0
	p := &q.Person

	if p.AgeRangeMin != 0 || p.AgeRangeMax != 0 {
		r := personAgeRange(&o.Person)
		if r.Known() && queryRange(zeroUnknown(p.AgeRangeMin), zeroUnknown(p.AgeRangeMax)).Overlaps(r) {
			n++
		}
	}
	if p.HeightMin != "" || p.HeightMax != "" {
		r := personHeightRange(&o.Person)
		if r.Known() && queryRange(ParseHeight(p.HeightMin), ParseHeight(p.HeightMax)).Overlaps(r) {
			n++
		}
	}
	if v := &q.Vehicle; v.YearMin != 0 || v.YearMax != 0 {
		r := vehicleYearRange(&o.Vehicle)
		if r.Known() && queryRange(zeroUnknown(v.YearMin), zeroUnknown(v.YearMax)).Overlaps(r) {
			n++
		}
	}

	primary, secondary := personBuilds(&o.Person)
	hasBuild := primary != "" || secondary != ""
	if p.BuildPrimary != "" && hasBuild && (p.BuildPrimary == primary || p.BuildPrimary == secondary) {
		n++
	}
	if p.BuildSecondary != "" && hasBuild && (p.BuildSecondary == primary || p.BuildSecondary == secondary) {
		n++
	}

	for _, f := range scalarFields {
		term := f.query(q)
		if term != "" && f.record(o) == term {
			n++
		}
	}
	return n
}
