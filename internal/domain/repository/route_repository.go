package repository

import (
	"context"

	"skywatch-service/internal/domain/entity"
)

// RouteRepository defines the interface for route reference data
type RouteRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Route, error)
	List(ctx context.Context) ([]entity.Route, error)
	// ListValidPairs returns every (route, airline) combination present
	// in the route-airline mapping. Fetch enumeration iterates exactly
	// this set, never the full cross product.
	ListValidPairs(ctx context.Context) ([]entity.RoutePair, error)
}
