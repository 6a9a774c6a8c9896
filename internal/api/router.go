package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/sightline/internal/api/handlers"
	"github.com/your-org/sightline/internal/api/ws"
	"github.com/your-org/sightline/internal/auth"
	"github.com/your-org/sightline/internal/encryption"
	"github.com/your-org/sightline/internal/queue"
	"github.com/your-org/sightline/internal/storage"
)

type RouterConfig struct {
	APIKey   string
	DB       *storage.PostgresStore
	MinIO    *storage.MinIOStore
	Producer *queue.Producer
	Cipher   *encryption.Cipher
	Hub      *ws.Hub
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// WebSocket
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Observations
	obsH := handlers.NewObservationHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	v1.POST("/observations", obsH.Create)
	v1.GET("/observations", obsH.List)
	v1.GET("/observations/:id", obsH.Get)
	v1.PATCH("/observations/:id", obsH.Update)
	v1.DELETE("/observations/:id", obsH.Delete)

	// Images
	imgH := handlers.NewImageHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	v1.POST("/observations/:id/images", imgH.Upload)
	v1.GET("/observations/:id/images/:imageId", imgH.Serve)
	v1.DELETE("/observations/:id/images/:imageId", imgH.Delete)

	// Search
	searchH := handlers.NewSearchHandler(cfg.DB)
	v1.POST("/search", searchH.Search)

	// Backup
	backupH := handlers.NewBackupHandler(cfg.DB, cfg.Cipher)
	v1.GET("/export", backupH.Export)
	v1.POST("/import", backupH.Import)

	return r
}
