package service

import (
	"context"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/alexivanou/places-api/internal/repository"
	"go.uber.org/zap"
)

// Cache is the read-through store for query results
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// Service provides business logic for the API
type Service struct {
	placeRepo repository.PlaceRepository
	cache     Cache
	batchSize int
	logger    *zap.Logger
}

// NewService creates a new service instance.
// cache may be nil to disable caching.
func NewService(
	placeRepo repository.PlaceRepository,
	cache Cache,
	batchSize int,
	logger *zap.Logger,
) *Service {
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		placeRepo: placeRepo,
		cache:     cache,
		batchSize: batchSize,
		logger:    logger,
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, interface{}) error          { return nil }
func (noopCache) Invalidate(context.Context) error                         { return nil }
