package models

import (
	"time"

	"github.com/google/uuid"
)

// PlateLength is the number of character slots in a license plate record.
// A slot holding "" means unknown, never "known to be blank".
const PlateLength = 7

// Observation is a single logged sighting: who/what was seen, when, and any
// attached photos. Every descriptive attribute is optional — the record is
// whatever was known at the time.
type Observation struct {
	ID              int64       `json:"id" db:"id"`
	Date            string      `json:"date" db:"date"` // YYYY-MM-DD, when the event occurred
	Time            string      `json:"time" db:"time"` // HH:MM
	Person          PersonInfo  `json:"person" db:"person"`
	Vehicle         VehicleInfo `json:"vehicle" db:"vehicle"`
	Notes           string      `json:"notes" db:"notes"`
	AdditionalNotes string      `json:"additionalNotes,omitempty" db:"additional_notes"`
	Images          []Image     `json:"images" db:"images"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// PersonInfo describes an observed individual.
//
// Height and build each carry two representations kept in sync by writers:
// a legacy single token (which may itself encode a range, "4ft10-5ft2" or
// "medium-heavy") and explicit min/max (or primary/secondary) fields. Readers
// must accept whichever is populated.
type PersonInfo struct {
	FirstName  string `json:"firstName,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName,omitempty"`

	AgeRangeMin int `json:"ageRangeMin,omitempty"` // 0 = unknown
	AgeRangeMax int `json:"ageRangeMax,omitempty"`

	Height    string `json:"height,omitempty"` // legacy token, e.g. "5ft10" or "4ft10-5ft2"
	HeightMin string `json:"heightMin,omitempty"`
	HeightMax string `json:"heightMax,omitempty"`

	Build          string `json:"build,omitempty"` // legacy token, e.g. "medium" or "medium-heavy"
	BuildPrimary   string `json:"buildPrimary,omitempty"`
	BuildSecondary string `json:"buildSecondary,omitempty"`

	HairColor string `json:"hairColor,omitempty"`
	EyeColor  string `json:"eyeColor,omitempty"`
	SkinTone  string `json:"skinTone,omitempty"`
	Tattoos   string `json:"tattoos,omitempty"`

	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`

	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// VehicleInfo describes an observed vehicle. Year has the same dual
// legacy/range representation as PersonInfo height.
type VehicleInfo struct {
	Make    string `json:"make,omitempty"`
	Model   string `json:"model,omitempty"`
	Year    string `json:"year,omitempty"` // legacy token, e.g. "2018" or "2015-2020"
	YearMin int    `json:"yearMin,omitempty"`
	YearMax int    `json:"yearMax,omitempty"`
	Color   string `json:"color,omitempty"`

	// LicensePlate holds exactly PlateLength slots when present; "" = unknown.
	LicensePlate        []string `json:"licensePlate,omitempty"`
	AdditionalLocations []string `json:"additionalLocations,omitempty"`
}

// Image is one photograph attached to an observation.
type Image struct {
	ID          uuid.UUID      `json:"id"`
	URL         string         `json:"url"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	ObjectKey   string         `json:"objectKey,omitempty"` // MinIO key of the original upload
	Metadata    *ImageMetadata `json:"metadata,omitempty"`
	UploadedAt  time.Time      `json:"uploadedAt"`
}

// ImageMetadata is extracted from the photo by the metadata worker.
type ImageMetadata struct {
	TakenAt     *time.Time `json:"takenAt,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Road        string     `json:"road,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Postcode    string     `json:"postcode,omitempty"`
	Country     string     `json:"country,omitempty"`
	CameraMake  string     `json:"cameraMake,omitempty"`
	CameraModel string     `json:"cameraModel,omitempty"`
}
