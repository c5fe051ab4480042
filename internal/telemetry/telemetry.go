// Package telemetry provides OpenTelemetry instrumentation for the Qivook
// engine. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "qivook-engine"

// Metrics holds all engine Prometheus metrics.
type Metrics struct {
	// Ingestion metrics
	DocumentsProcessed *prometheus.CounterVec
	DocumentsDropped   *prometheus.CounterVec
	EntitiesExtracted  *prometheus.CounterVec
	ProcessingDuration *prometheus.HistogramVec

	// Loader cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Offline gateway metrics
	GatewayRequests *prometheus.CounterVec
	QueueDepth      *prometheus.GaugeVec
	SyncPosts       *prometheus.CounterVec
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.DocumentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_documents_processed_total",
		Help: "Total source documents run through the country processor",
	}, []string{"country"})

	m.DocumentsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_documents_dropped_total",
		Help: "Total source documents dropped during loading",
	}, []string{"country"})

	m.EntitiesExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_entities_extracted_total",
		Help: "Total entities extracted, by country and entity kind",
	}, []string{"country", "kind"})

	m.ProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qivook_processing_duration_seconds",
		Help:    "Time to process one country document batch",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"country"})

	m.CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_country_cache_hits_total",
		Help: "Country data cache hits",
	}, []string{"country"})

	m.CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_country_cache_misses_total",
		Help: "Country data cache misses (TTL expiry or forced reload)",
	}, []string{"country"})

	m.GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_gateway_requests_total",
		Help: "Offline gateway requests by outcome (cache, upstream, fallback, offline)",
	}, []string{"outcome"})

	m.QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "qivook_offline_queue_depth",
		Help: "Pending writes in the offline queue",
	}, []string{"queue"})

	m.SyncPosts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qivook_sync_posts_total",
		Help: "Queued write submissions by queue and result",
	}, []string{"queue", "result"})

	return m
}
