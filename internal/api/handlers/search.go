package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sightline/internal/models"
	"github.com/your-org/sightline/internal/observability"
	"github.com/your-org/sightline/internal/search"
	"github.com/your-org/sightline/internal/storage"
	"github.com/your-org/sightline/pkg/dto"
)

type SearchHandler struct {
	db *storage.PostgresStore
}

func NewSearchHandler(db *storage.PostgresStore) *SearchHandler {
	return &SearchHandler{db: db}
}

// Search runs the filter/ranking engine over a decrypted snapshot of all
// records. An empty body is a valid query and returns everything,
// newest-first.
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if len(req.LicensePlate) > models.PlateLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "license plate query has too many slots"})
		return
	}

	snapshot, err := h.db.ListObservations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	results := search.Search(snapshot, req.ToQuery())
	observability.SearchesTotal.Inc()
	observability.SearchDuration.Observe(time.Since(start).Seconds())
	observability.SearchResults.Observe(float64(len(results)))

	if results == nil {
		results = []models.Observation{}
	}
	c.JSON(http.StatusOK, dto.SearchResponse{
		Results: results,
		Total:   len(results),
	})
}
