package service

import (
	"context"
	"io"

	"github.com/alexivanou/places-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	ImportPlaces(ctx context.Context, r io.Reader) (*model.ImportReport, error)
	ListPlaces(ctx context.Context, filter model.PlaceFilter) ([]model.MinPlace, error)
	GetPlace(ctx context.Context, code string) (*model.Place, error)
	DeletePlace(ctx context.Context, code string) (bool, error)
}
