package service

import (
	"context"
	"fmt"

	"github.com/alexivanou/places-api/internal/cache"
	"github.com/alexivanou/places-api/internal/metrics"
	"github.com/alexivanou/places-api/internal/model"
	"go.uber.org/zap"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// ListPlaces returns min_places rows matching the filter
func (s *Service) ListPlaces(ctx context.Context, filter model.PlaceFilter) ([]model.MinPlace, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	key := cache.ListKey(filter.Country, filter.Tag, filter.Limit, filter.Offset)
	var places []model.MinPlace
	if s.cachedGet(ctx, key, &places) {
		return places, nil
	}

	places, err := s.placeRepo.ListPlaces(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	s.cachedSet(ctx, key, places)
	return places, nil
}

// GetPlace returns the full record for code, or nil if it does not exist
func (s *Service) GetPlace(ctx context.Context, code string) (*model.Place, error) {
	key := cache.PlaceKey(code)
	var place model.Place
	if s.cachedGet(ctx, key, &place) {
		return &place, nil
	}

	found, err := s.placeRepo.GetPlaceByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	if found == nil {
		return nil, nil
	}
	s.cachedSet(ctx, key, found)
	return found, nil
}

// DeletePlace removes a place from both tables
func (s *Service) DeletePlace(ctx context.Context, code string) (bool, error) {
	deleted, err := s.placeRepo.DeletePlace(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to delete place: %w", err)
	}
	if deleted {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate cache", zap.Error(err))
		}
	}
	return deleted, nil
}

func (s *Service) cachedGet(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if hit {
		metrics.CacheHitsTotal.Inc()
	} else {
		metrics.CacheMissesTotal.Inc()
	}
	return hit
}

func (s *Service) cachedSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
