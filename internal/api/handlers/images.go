package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/sightline/internal/models"
	"github.com/your-org/sightline/internal/observability"
	"github.com/your-org/sightline/internal/queue"
	"github.com/your-org/sightline/internal/storage"
	"github.com/your-org/sightline/pkg/dto"
)

type ImageHandler struct {
	db       *storage.PostgresStore
	minio    *storage.MinIOStore
	producer *queue.Producer
}

func NewImageHandler(db *storage.PostgresStore, minio *storage.MinIOStore, producer *queue.Producer) *ImageHandler {
	return &ImageHandler{db: db, minio: minio, producer: producer}
}

// Upload accepts a multipart image, stores it in MinIO, appends it to the
// record's image list, and enqueues metadata extraction.
func (h *ImageHandler) Upload(c *gin.Context) {
	obsID, ok := parseObservationID(c)
	if !ok {
		return
	}

	obs, err := h.db.GetObservation(c.Request.Context(), obsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "observation not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
		return
	}

	imageID := uuid.New()
	contentType := header.Header.Get("Content-Type")
	objectKey := fmt.Sprintf("%s%s_%s", storage.ObservationPrefix(obsID), imageID, header.Filename)
	if err := h.minio.PutObject(c.Request.Context(), objectKey, imageData, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store image failed"})
		return
	}

	img := models.Image{
		ID:          imageID,
		URL:         fmt.Sprintf("/v1/observations/%d/images/%s", obsID, imageID),
		Name:        header.Filename,
		Description: c.PostForm("description"),
		ObjectKey:   objectKey,
		UploadedAt:  time.Now().UTC(),
	}
	obs.Images = append(obs.Images, img)

	if err := h.db.UpdateObservation(c.Request.Context(), obs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.ImagesUploaded.Inc()

	task := models.ImageTask{
		ObservationID: obsID,
		ImageID:       imageID,
		ObjectKey:     objectKey,
		ContentType:   contentType,
	}
	if err := h.producer.PublishImageTask(c.Request.Context(), obsID, task); err != nil {
		slog.Warn("enqueue image task", "observation", obsID, "image", imageID, "error", err)
	}

	c.JSON(http.StatusCreated, dto.ImageUploadResponse{
		ID:          img.ID,
		URL:         img.URL,
		Name:        img.Name,
		Description: img.Description,
		UploadedAt:  img.UploadedAt.Format(time.RFC3339),
	})
}

// Serve proxies the image bytes from MinIO.
func (h *ImageHandler) Serve(c *gin.Context) {
	obsID, ok := parseObservationID(c)
	if !ok {
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	img, _, ok := h.findImage(c, obsID, imageID)
	if !ok {
		return
	}

	data, err := h.minio.GetObject(c.Request.Context(), img.ObjectKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image data not found"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}

// Delete removes one image from the record and from MinIO.
func (h *ImageHandler) Delete(c *gin.Context) {
	obsID, ok := parseObservationID(c)
	if !ok {
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	img, obs, ok := h.findImage(c, obsID, imageID)
	if !ok {
		return
	}

	kept := obs.Images[:0]
	for _, existing := range obs.Images {
		if existing.ID != imageID {
			kept = append(kept, existing)
		}
	}
	obs.Images = kept

	if err := h.db.UpdateObservation(c.Request.Context(), obs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.minio.DeleteObject(c.Request.Context(), img.ObjectKey); err != nil {
		slog.Warn("delete image object", "key", img.ObjectKey, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ImageHandler) findImage(c *gin.Context, obsID int64, imageID uuid.UUID) (models.Image, *models.Observation, bool) {
	obs, err := h.db.GetObservation(c.Request.Context(), obsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return models.Image{}, nil, false
	}
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "observation not found"})
		return models.Image{}, nil, false
	}

	for _, img := range obs.Images {
		if img.ID == imageID {
			return img, obs, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	return models.Image{}, nil, false
}
