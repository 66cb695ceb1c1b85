package api

import (
	"github.com/alexivanou/places-api/internal/metrics"
	"github.com/alexivanou/places-api/internal/service"
	"github.com/alexivanou/places-api/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RouterOptions carries the optional collaborators of the router
type RouterOptions struct {
	Logger         *zap.Logger
	MaxUploadBytes int64
}

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, opts RouterOptions) *mux.Router {
	handler := NewHandler(service, opts.Logger, opts.MaxUploadBytes)
	statsHandler := NewStatsHandler(statsCollector, opts.Logger)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/places", handler.UploadPlaces).Methods("POST")
	v1.HandleFunc("/places", handler.ListPlaces).Methods("GET")
	v1.HandleFunc("/places/{code}", handler.GetPlace).Methods("GET")
	v1.HandleFunc("/places/{code}", handler.DeletePlace).Methods("DELETE")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
