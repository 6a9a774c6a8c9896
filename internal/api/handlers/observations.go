package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sightline/internal/models"
	"github.com/your-org/sightline/internal/observability"
	"github.com/your-org/sightline/internal/queue"
	"github.com/your-org/sightline/internal/storage"
	"github.com/your-org/sightline/pkg/dto"
)

type ObservationHandler struct {
	db       *storage.PostgresStore
	minio    *storage.MinIOStore
	producer *queue.Producer
}

func NewObservationHandler(db *storage.PostgresStore, minio *storage.MinIOStore, producer *queue.Producer) *ObservationHandler {
	return &ObservationHandler{db: db, minio: minio, producer: producer}
}

func parseObservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid observation id"})
		return 0, false
	}
	return id, true
}

func (h *ObservationHandler) Create(c *gin.Context) {
	var req dto.CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if plate := req.Vehicle.LicensePlate; len(plate) != 0 && len(plate) != models.PlateLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "license plate must have exactly 7 slots"})
		return
	}

	obs := &models.Observation{
		Date:            req.Date,
		Time:            req.Time,
		Person:          req.Person,
		Vehicle:         req.Vehicle,
		Notes:           req.Notes,
		AdditionalNotes: req.AdditionalNotes,
	}

	if err := h.db.CreateObservation(c.Request.Context(), obs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.ObservationsCreated.Inc()
	h.publishEvent(c, models.EventObservationCreated, obs.ID)

	c.JSON(http.StatusCreated, obs)
}

func (h *ObservationHandler) List(c *gin.Context) {
	observations, err := h.db.ListObservations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if observations == nil {
		observations = []models.Observation{}
	}

	c.JSON(http.StatusOK, dto.ObservationListResponse{
		Observations: observations,
		Total:        len(observations),
	})
}

func (h *ObservationHandler) Get(c *gin.Context) {
	id, ok := parseObservationID(c)
	if !ok {
		return
	}

	obs, err := h.db.GetObservation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "observation not found"})
		return
	}

	c.JSON(http.StatusOK, obs)
}

// Update applies a partial update; only fields present in the request change.
// A present images array replaces the stored one wholesale.
func (h *ObservationHandler) Update(c *gin.Context) {
	id, ok := parseObservationID(c)
	if !ok {
		return
	}

	var req dto.UpdateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	obs, err := h.db.GetObservation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "observation not found"})
		return
	}

	if req.Date != nil {
		obs.Date = *req.Date
	}
	if req.Time != nil {
		obs.Time = *req.Time
	}
	if req.Person != nil {
		obs.Person = *req.Person
	}
	if req.Vehicle != nil {
		if plate := req.Vehicle.LicensePlate; len(plate) != 0 && len(plate) != models.PlateLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "license plate must have exactly 7 slots"})
			return
		}
		obs.Vehicle = *req.Vehicle
	}
	if req.Notes != nil {
		obs.Notes = *req.Notes
	}
	if req.AdditionalNotes != nil {
		obs.AdditionalNotes = *req.AdditionalNotes
	}
	if req.Images != nil {
		obs.Images = *req.Images
	}

	if err := h.db.UpdateObservation(c.Request.Context(), obs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publishEvent(c, models.EventObservationUpdated, obs.ID)

	c.JSON(http.StatusOK, obs)
}

// Delete removes the record and releases its attached image files.
func (h *ObservationHandler) Delete(c *gin.Context) {
	id, ok := parseObservationID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteObservation(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := h.minio.DeletePrefix(c.Request.Context(), storage.ObservationPrefix(id)); err != nil {
		slog.Warn("release observation images", "id", id, "error", err)
	}

	observability.ObservationsDeleted.Inc()
	h.publishEvent(c, models.EventObservationDeleted, id)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ObservationHandler) publishEvent(c *gin.Context, eventType string, id int64) {
	evt := models.ObservationEvent{
		Type:          eventType,
		ObservationID: id,
		Timestamp:     time.Now().UTC(),
	}
	if err := h.producer.PublishEvent(c.Request.Context(), id, evt); err != nil {
		slog.Warn("publish observation event", "type", eventType, "id", id, "error", err)
	}
}
