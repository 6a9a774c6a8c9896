package search

// Query is a structured search request. Every field is optional; an empty
// Query matches everything and orders purely by recency.
type Query struct {
	// Text is matched case-insensitively as a substring against every
	// string surface of a record.
	Text string

	Person  PersonQuery
	Vehicle VehicleQuery

	// LicensePlate holds up to 7 slots; "" = wildcard.
	LicensePlate []string

	// Inclusive ISO date bounds, independently optional.
	DateFrom string
	DateTo   string
}

// PersonQuery constrains person attributes. Height bounds use the same token
// vocabulary as stored heights ("5ft4"); zero/empty means unconstrained.
type PersonQuery struct {
	AgeRangeMin int
	AgeRangeMax int

	HeightMin string
	HeightMax string

	BuildPrimary   string
	BuildSecondary string

	HairColor string
	EyeColor  string
	SkinTone  string
	Tattoos   string
}

// VehicleQuery constrains vehicle attributes; the plate lives on Query.
type VehicleQuery struct {
	YearMin int
	YearMax int

	Make  string
	Model string
	Color string
}

// IsEmpty reports whether the query carries no active constraint at all.
func (q *Query) IsEmpty() bool {
	return q.Text == "" &&
		q.DateFrom == "" && q.DateTo == "" &&
		!q.plateActive() &&
		q.Person == (PersonQuery{}) &&
		q.Vehicle == (VehicleQuery{})
}

func (q *Query) plateActive() bool {
	for _, slot := range q.LicensePlate {
		if slot != "" {
			return true
		}
	}
	return false
}

func (q *Query) dateActive() bool {
	return q.DateFrom != "" || q.DateTo != ""
}
