package search

import (
	"strings"

	"github.com/your-org/sightline/internal/models"
)

// scalarField pairs a query term with the record value it must equal. The
// filterable attribute set is this explicit table — adding an attribute means
// adding a row here, nothing else.
type scalarField struct {
	name   string
	query  func(*Query) string
	record func(*models.Observation) string
}

var scalarFields = []scalarField{
	{"hairColor",
		func(q *Query) string { return q.Person.HairColor },
		func(o *models.Observation) string { return o.Person.HairColor }},
	{"eyeColor",
		func(q *Query) string { return q.Person.EyeColor },
		func(o *models.Observation) string { return o.Person.EyeColor }},
	{"skinTone",
		func(q *Query) string { return q.Person.SkinTone },
		func(o *models.Observation) string { return o.Person.SkinTone }},
	{"tattoos",
		func(q *Query) string { return q.Person.Tattoos },
		func(o *models.Observation) string { return o.Person.Tattoos }},
	{"vehicleMake",
		func(q *Query) string { return q.Vehicle.Make },
		func(o *models.Observation) string { return o.Vehicle.Make }},
	{"vehicleModel",
		func(q *Query) string { return q.Vehicle.Model },
		func(o *models.Observation) string { return o.Vehicle.Model }},
	{"vehicleColor",
		func(q *Query) string { return q.Vehicle.Color },
		func(o *models.Observation) string { return o.Vehicle.Color }},
}

// personHeightRange resolves the record's height to an inches interval,
// preferring the explicit min/max pair over the legacy token.
func personHeightRange(p *models.PersonInfo) Range {
	if p.HeightMin != "" || p.HeightMax != "" {
		return makeRange(ParseHeight(p.HeightMin), ParseHeight(p.HeightMax))
	}
	return ParseHeightRange(p.Height)
}

// personAgeRange resolves the record's age interval; 0 means unset.
func personAgeRange(p *models.PersonInfo) Range {
	return makeRange(zeroUnknown(p.AgeRangeMin), zeroUnknown(p.AgeRangeMax))
}

// vehicleYearRange resolves the record's model-year interval, preferring the
// explicit min/max pair over the legacy token.
func vehicleYearRange(v *models.VehicleInfo) Range {
	if v.YearMin != 0 || v.YearMax != 0 {
		return makeRange(zeroUnknown(v.YearMin), zeroUnknown(v.YearMax))
	}
	return ParseYearRange(v.Year)
}

// personBuilds returns the record's build values, splitting a legacy
// dash-joined token ("medium-heavy") when the explicit pair is absent.
func personBuilds(p *models.PersonInfo) (primary, secondary string) {
	if p.BuildPrimary != "" || p.BuildSecondary != "" {
		return p.BuildPrimary, p.BuildSecondary
	}
	if lo, hi, ok := splitRangeToken(p.Build); ok {
		return lo, hi
	}
	return p.Build, ""
}

func zeroUnknown(v int) int {
	if v == 0 {
		return Unknown
	}
	return v
}

// textSurfaces collects every string the free-text query is checked against:
// person and vehicle descriptive fields, the joined plate, location notes,
// both note fields, and image names/descriptions/geocoded metadata.
func textSurfaces(o *models.Observation) []string {
	p := &o.Person
	v := &o.Vehicle

	out := []string{
		p.FirstName, p.MiddleName, p.LastName,
		p.Height, p.HeightMin, p.HeightMax,
		p.Build, p.BuildPrimary, p.BuildSecondary,
		p.HairColor, p.EyeColor, p.SkinTone, p.Tattoos,
		p.Phone, p.Email,
		p.Address, p.City, p.State, p.Zip,
		v.Make, v.Model, v.Year, v.Color,
		o.Notes, o.AdditionalNotes,
	}

	if len(v.LicensePlate) > 0 {
		out = append(out, strings.Join(v.LicensePlate, ""))
	}
	out = append(out, v.AdditionalLocations...)

	for i := range o.Images {
		img := &o.Images[i]
		out = append(out, img.Name, img.Description)
		if m := img.Metadata; m != nil {
			out = append(out, m.Road, m.City, m.State, m.Postcode, m.Country,
				m.CameraMake, m.CameraModel)
		}
	}
	return out
}
