package repository

import (
	"context"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &GormRouteRepository{
		db: db,
	}
}

// Routes GORM model for database mapping
type Routes struct {
	ID              uint   `gorm:"primaryKey"`
	Origin          string `gorm:"column:origin;uniqueIndex:idx_route_pair"`
	Destination     string `gorm:"column:destination;uniqueIndex:idx_route_pair"`
	OriginCity      string `gorm:"column:origin_city"`
	DestinationCity string `gorm:"column:destination_city"`
	Region          string `gorm:"column:region"`
}

// TableName overrides the default table name
func (Routes) TableName() string {
	return "m_routes"
}

// RouteAirlines maps which airlines legitimately serve which routes.
// Fetch enumeration iterates only pairs present here.
type RouteAirlines struct {
	RouteID     uint   `gorm:"column:route_id;uniqueIndex:idx_route_airline"`
	AirlineCode string `gorm:"column:airline_code;uniqueIndex:idx_route_airline"`
}

// TableName overrides the default table name
func (RouteAirlines) TableName() string {
	return "m_route_airlines"
}

// GetByID finds a route by id
func (r *GormRouteRepository) GetByID(ctx context.Context, id uint) (*entity.Route, error) {
	var route Routes
	result := r.db.WithContext(ctx).First(&route, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRouteEntity(&route), nil
}

// List returns all monitored routes ordered by region
func (r *GormRouteRepository) List(ctx context.Context) ([]entity.Route, error) {
	var routes []Routes
	result := r.db.WithContext(ctx).Order("region, origin_city").Find(&routes)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]entity.Route, 0, len(routes))
	for i := range routes {
		entities = append(entities, *toRouteEntity(&routes[i]))
	}
	return entities, nil
}

// ListValidPairs returns all (route, airline) combinations in the mapping
func (r *GormRouteRepository) ListValidPairs(ctx context.Context) ([]entity.RoutePair, error) {
	routes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	routesByID := make(map[uint]entity.Route, len(routes))
	for _, route := range routes {
		routesByID[route.ID] = route
	}

	var mappings []RouteAirlines
	result := r.db.WithContext(ctx).Order("route_id, airline_code").Find(&mappings)
	if result.Error != nil {
		return nil, result.Error
	}

	pairs := make([]entity.RoutePair, 0, len(mappings))
	for _, m := range mappings {
		route, ok := routesByID[m.RouteID]
		if !ok {
			continue
		}
		pairs = append(pairs, entity.RoutePair{Route: route, AirlineCode: m.AirlineCode})
	}
	return pairs, nil
}

// Convert GORM model to domain entity
func toRouteEntity(route *Routes) *entity.Route {
	return &entity.Route{
		ID:              route.ID,
		Origin:          route.Origin,
		Destination:     route.Destination,
		OriginCity:      route.OriginCity,
		DestinationCity: route.DestinationCity,
		Region:          route.Region,
	}
}
