package dto

import (
	"github.com/your-org/sightline/internal/models"
	"github.com/your-org/sightline/internal/search"
)

// SearchRequest is the wire shape of a search query. Every field is
// optional; the plate is a 7-slot array where null (or "") means wildcard.
type SearchRequest struct {
	Query        string             `json:"query"`
	Person       SearchPersonQuery  `json:"person"`
	Vehicle      SearchVehicleQuery `json:"vehicle"`
	LicensePlate []*string          `json:"licensePlate"`
	DateFrom     string             `json:"dateFrom"`
	DateTo       string             `json:"dateTo"`
}

type SearchPersonQuery struct {
	AgeRangeMin    int    `json:"ageRangeMin"`
	AgeRangeMax    int    `json:"ageRangeMax"`
	HeightMin      string `json:"heightMin"`
	HeightMax      string `json:"heightMax"`
	BuildPrimary   string `json:"buildPrimary"`
	BuildSecondary string `json:"buildSecondary"`
	HairColor      string `json:"hairColor"`
	EyeColor       string `json:"eyeColor"`
	SkinTone       string `json:"skinTone"`
	Tattoos        string `json:"tattoos"`
}

type SearchVehicleQuery struct {
	YearMin int    `json:"yearMin"`
	YearMax int    `json:"yearMax"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Color   string `json:"color"`
}

// ToQuery converts the wire request into an engine query.
func (r *SearchRequest) ToQuery() *search.Query {
	q := &search.Query{
		Text:     r.Query,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Person: search.PersonQuery{
			AgeRangeMin:    r.Person.AgeRangeMin,
			AgeRangeMax:    r.Person.AgeRangeMax,
			HeightMin:      r.Person.HeightMin,
			HeightMax:      r.Person.HeightMax,
			BuildPrimary:   r.Person.BuildPrimary,
			BuildSecondary: r.Person.BuildSecondary,
			HairColor:      r.Person.HairColor,
			EyeColor:       r.Person.EyeColor,
			SkinTone:       r.Person.SkinTone,
			Tattoos:        r.Person.Tattoos,
		},
		Vehicle: search.VehicleQuery{
			YearMin: r.Vehicle.YearMin,
			YearMax: r.Vehicle.YearMax,
			Make:    r.Vehicle.Make,
			Model:   r.Vehicle.Model,
			Color:   r.Vehicle.Color,
		},
	}

	if len(r.LicensePlate) > 0 {
		plate := make([]string, 0, models.PlateLength)
		for i, slot := range r.LicensePlate {
			if i >= models.PlateLength {
				break
			}
			if slot == nil {
				plate = append(plate, "")
			} else {
				plate = append(plate, *slot)
			}
		}
		q.LicensePlate = plate
	}

	return q
}

type SearchResponse struct {
	Results []models.Observation `json:"results"`
	Total   int                  `json:"total"`
}
