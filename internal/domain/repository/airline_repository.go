package repository

import (
	"context"

	"skywatch-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline operations
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	List(ctx context.Context) ([]entity.Airline, error)
}
