package models

import (
	"time"

	"github.com/google/uuid"
)

// ImageTask is the message published to NATS for metadata worker processing.
type ImageTask struct {
	ObservationID int64     `json:"observation_id"`
	ImageID       uuid.UUID `json:"image_id"`
	ObjectKey     string    `json:"object_key"` // MinIO object key
	ContentType   string    `json:"content_type,omitempty"`
}

// Observation event types carried on the EVENTS stream.
const (
	EventObservationCreated = "observation_created"
	EventObservationUpdated = "observation_updated"
	EventObservationDeleted = "observation_deleted"
	EventImageMetadataReady = "image_metadata_ready"
)

// ObservationEvent is published whenever a record changes, and relayed to
// WebSocket clients by the API.
type ObservationEvent struct {
	Type          string     `json:"type"`
	ObservationID int64      `json:"observation_id"`
	ImageID       *uuid.UUID `json:"image_id,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}
