package repository

import (
	"context"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// Airlines GORM model for database mapping
type Airlines struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"column:code;unique"`
	Name     string `gorm:"column:name;unique"`
	Alliance string `gorm:"column:alliance;default:oneworld"`
	Country  string `gorm:"column:country"`
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

// GetByCode finds an airline by code
func (r *GormAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	var airline Airlines
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&airline)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirlineEntity(&airline), nil
}

// List returns all monitored airlines ordered by name
func (r *GormAirlineRepository) List(ctx context.Context) ([]entity.Airline, error) {
	var airlines []Airlines
	result := r.db.WithContext(ctx).Order("name").Find(&airlines)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]entity.Airline, 0, len(airlines))
	for i := range airlines {
		entities = append(entities, *toAirlineEntity(&airlines[i]))
	}
	return entities, nil
}

// Convert GORM model to domain entity
func toAirlineEntity(airline *Airlines) *entity.Airline {
	return &entity.Airline{
		ID:       airline.ID,
		Code:     airline.Code,
		Name:     airline.Name,
		Alliance: airline.Alliance,
		Country:  airline.Country,
	}
}
