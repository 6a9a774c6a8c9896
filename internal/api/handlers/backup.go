package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sightline/internal/backup"
	"github.com/your-org/sightline/internal/encryption"
	"github.com/your-org/sightline/internal/observability"
	"github.com/your-org/sightline/internal/storage"
)

type BackupHandler struct {
	db     *storage.PostgresStore
	cipher *encryption.Cipher
}

func NewBackupHandler(db *storage.PostgresStore, cipher *encryption.Cipher) *BackupHandler {
	return &BackupHandler{db: db, cipher: cipher}
}

// Export streams the full dataset as an encrypted archive download.
func (h *BackupHandler) Export(c *gin.Context) {
	records, err := h.db.ListObservations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var archive bytes.Buffer
	if err := backup.Export(&archive, h.cipher, records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.BackupOps.WithLabelValues("export").Inc()

	filename := fmt.Sprintf("sightline-%s.backup", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/octet-stream", archive.Bytes())
}

// Import restores the dataset from an uploaded archive, replacing every
// existing record.
func (h *BackupHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("backup")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "backup file required"})
		return
	}
	defer file.Close()

	records, err := backup.Import(file, h.cipher)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid backup: " + err.Error()})
		return
	}

	if err := h.db.ImportObservations(c.Request.Context(), records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.BackupOps.WithLabelValues("import").Inc()

	c.JSON(http.StatusOK, gin.H{"status": "restored", "total": len(records)})
}
