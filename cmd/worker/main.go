package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/sightline/internal/config"
	"github.com/your-org/sightline/internal/encryption"
	"github.com/your-org/sightline/internal/geocode"
	"github.com/your-org/sightline/internal/metadata"
	"github.com/your-org/sightline/internal/models"
	"github.com/your-org/sightline/internal/observability"
	"github.com/your-org/sightline/internal/queue"
	"github.com/your-org/sightline/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting Sightline metadata worker",
		"workers", cfg.Worker.Count,
		"cpu_cores", runtime.NumCPU(),
	)

	cipher, err := encryption.LoadOrCreate(cfg.Encryption.KeyPath)
	if err != nil {
		slog.Error("load encryption key", "error", err)
		os.Exit(1)
	}

	// Connect to Postgres
	db, err := storage.NewPostgresStore(cfg.Database, cipher)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to MinIO
	minioStore, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}

	// Connect to NATS
	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		slog.Error("connect to nats producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStreams(context.Background()); err != nil {
		slog.Warn("ensure nats streams", "error", err)
	}

	// Reverse geocoder (optional)
	var geocoder *geocode.Client
	if cfg.Geocode.BaseURL != "" {
		geocoder = geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent)
		slog.Info("reverse geocoding enabled", "base_url", cfg.Geocode.BaseURL)
	}

	// Create NATS consumer
	consumer, err := queue.NewConsumer(cfg.NATS.URL)
	if err != nil {
		slog.Error("create consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start consuming image metadata tasks
	err = consumer.ConsumeImageTasks(ctx, "metadata-workers", func(ctx context.Context, msg jetstream.Msg) error {
		var task models.ImageTask
		if err := json.Unmarshal(msg.Data(), &task); err != nil {
			slog.Error("unmarshal image task", "error", err)
			return nil // Don't retry on unmarshal errors
		}

		if err := processImage(ctx, task, db, minioStore, producer, geocoder); err != nil {
			observability.ImagesProcessed.WithLabelValues("error").Inc()
			return fmt.Errorf("process image %s: %w", task.ImageID, err)
		}

		observability.ImagesProcessed.WithLabelValues("ok").Inc()
		return nil
	}, cfg.Worker.Count)
	if err != nil {
		slog.Error("start image task consumer", "error", err)
		os.Exit(1)
	}

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		addr := fmt.Sprintf(":%d", cfg.Worker.MetricsPort)
		slog.Info("worker metrics listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server error", "error", err)
		}
	}()

	// Periodically report queue depth
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				depth, err := producer.QueueDepth(ctx)
				if err == nil {
					observability.QueueDepth.Set(float64(depth))
				}
			}
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down worker...")
	cancel()
	time.Sleep(2 * time.Second)
	slog.Info("worker stopped")
}

// processImage downloads the uploaded image, pulls EXIF metadata out of it,
// optionally resolves GPS coordinates to an address, and stores the result on
// the owning observation.
func processImage(
	ctx context.Context,
	task models.ImageTask,
	db *storage.PostgresStore,
	minioStore *storage.MinIOStore,
	producer *queue.Producer,
	geocoder *geocode.Client,
) error {
	data, err := minioStore.GetObject(ctx, task.ObjectKey)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}

	meta, err := metadata.Extract(data)
	if err != nil {
		// Images without EXIF are common; record the outcome and move on.
		slog.Info("no usable metadata in image",
			"observation_id", task.ObservationID,
			"image_id", task.ImageID,
			"reason", err.Error(),
		)
		return nil
	}

	if geocoder != nil && meta.Latitude != nil && meta.Longitude != nil {
		addr, err := geocoder.Reverse(ctx, *meta.Latitude, *meta.Longitude)
		if err != nil {
			slog.Warn("reverse geocode failed",
				"image_id", task.ImageID,
				"error", err,
			)
		} else {
			meta.Road = addr.Road
			meta.City = addr.Locality()
			meta.State = addr.State
			meta.Postcode = addr.Postcode
			meta.Country = addr.Country
		}
	}

	if err := db.UpdateImageMetadata(ctx, task.ObservationID, task.ImageID, meta); err != nil {
		return fmt.Errorf("store image metadata: %w", err)
	}

	imageID := task.ImageID
	event := models.ObservationEvent{
		Type:          models.EventImageMetadataReady,
		ObservationID: task.ObservationID,
		ImageID:       &imageID,
		Timestamp:     time.Now().UTC(),
	}
	if err := producer.PublishEvent(ctx, task.ObservationID, event); err != nil {
		slog.Warn("publish metadata event", "error", err)
	}

	return nil
}
