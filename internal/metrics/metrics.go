package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "places_uploads_total",
		Help: "CSV uploads by final state",
	}, []string{"state"})
	RowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "places_upload_rows_total",
		Help: "Uploaded data rows by outcome",
	}, []string{"outcome"})
	BatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "places_upsert_batches_total",
		Help: "Batches written to places and min_places",
	})
	BatchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "places_upsert_batch_duration_ms",
		Help:    "Batch upsert duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "places_cache_hits_total",
		Help: "Read-through cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "places_cache_misses_total",
		Help: "Read-through cache misses",
	})
	CacheBreakerTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "places_cache_breaker_transitions_total",
		Help: "Redis cache circuit breaker state changes",
	}, []string{"from", "to"})
)

func init() {
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(RowsTotal)
	prometheus.MustRegister(BatchesTotal)
	prometheus.MustRegister(BatchDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheBreakerTransitions)
}

// Handler exposes the registered metrics for scraping
func Handler() http.Handler { return promhttp.Handler() }
