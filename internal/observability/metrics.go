package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ObservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sightline",
		Name:      "observations_created_total",
		Help:      "Total number of observations created",
	})

	ObservationsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sightline",
		Name:      "observations_deleted_total",
		Help:      "Total number of observations deleted",
	})

	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sightline",
		Name:      "searches_total",
		Help:      "Total number of search requests",
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sightline",
		Name:      "search_duration_seconds",
		Help:      "Duration of a full filter+rank pass",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	SearchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sightline",
		Name:      "search_results",
		Help:      "Number of records returned per search",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	ImagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sightline",
		Name:      "images_uploaded_total",
		Help:      "Total number of images uploaded",
	})

	ImagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sightline",
		Name:      "images_processed_total",
		Help:      "Metadata extraction outcomes by status",
	}, []string{"status"})

	BackupOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sightline",
		Name:      "backup_operations_total",
		Help:      "Backup export/import operations by kind",
	}, []string{"kind"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sightline",
		Name:      "queue_depth",
		Help:      "Number of pending image tasks in queue",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sightline",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sightline",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
