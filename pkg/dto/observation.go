package dto

import (
	"github.com/google/uuid"

	"github.com/your-org/sightline/internal/models"
)

type CreateObservationRequest struct {
	Date            string             `json:"date" binding:"required"`
	Time            string             `json:"time"`
	Person          models.PersonInfo  `json:"person"`
	Vehicle         models.VehicleInfo `json:"vehicle"`
	Notes           string             `json:"notes"`
	AdditionalNotes string             `json:"additionalNotes"`
}

// UpdateObservationRequest carries a partial update; nil fields are left
// untouched. Images, when present, replace the whole array.
type UpdateObservationRequest struct {
	Date            *string             `json:"date"`
	Time            *string             `json:"time"`
	Person          *models.PersonInfo  `json:"person"`
	Vehicle         *models.VehicleInfo `json:"vehicle"`
	Notes           *string             `json:"notes"`
	AdditionalNotes *string             `json:"additionalNotes"`
	Images          *[]models.Image     `json:"images"`
}

type ObservationListResponse struct {
	Observations []models.Observation `json:"observations"`
	Total        int                  `json:"total"`
}

type ImageUploadResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	UploadedAt  string    `json:"uploadedAt"`
}

// WSEvent is a WebSocket message for real-time observation updates.
type WSEvent struct {
	Type          string     `json:"type"` // observation_created, observation_updated, observation_deleted, image_metadata_ready
	ObservationID int64      `json:"observation_id"`
	ImageID       *uuid.UUID `json:"image_id,omitempty"`
	Timestamp     string     `json:"timestamp,omitempty"`
}
