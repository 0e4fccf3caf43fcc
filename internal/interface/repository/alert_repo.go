package repository

import (
	"context"
	"fmt"
	"time"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAlertRepository implements AlertRepository over the price_alerts
// collection.
type MongoAlertRepository struct {
	collection *mongo.Collection
}

// NewMongoAlertRepository creates a new alert repository
func NewMongoAlertRepository(db *mongo.Database) repository.AlertRepository {
	collection := db.Collection("price_alerts")

	ctx := context.Background()
	activeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "active", Value: 1}, {Key: "routeId", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, activeIndex)

	return &MongoAlertRepository{
		collection: collection,
	}
}

type alertDoc struct {
	ID                      string     `bson:"_id"`
	RouteID                 uint       `bson:"routeId"`
	AirlineCode             string     `bson:"airlineCode,omitempty"`
	TargetPrice             string     `bson:"targetPrice"`
	Currency                string     `bson:"currency"`
	Email                   string     `bson:"email"`
	Active                  bool       `bson:"active"`
	CreatedAt               time.Time  `bson:"createdAt"`
	TriggeredAt             *time.Time `bson:"triggeredAt,omitempty"`
	TriggeringObservationID string     `bson:"triggeringObservationId,omitempty"`
}

// Create stores a new alert
func (r *MongoAlertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	if alert.ID == "" {
		alert.ID = primitive.NewObjectID().Hex()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	alert.Active = true

	doc := alertDoc{
		ID:          alert.ID,
		RouteID:     alert.RouteID,
		AirlineCode: alert.AirlineCode,
		TargetPrice: alert.TargetPrice.String(),
		Currency:    alert.Currency,
		Email:       alert.Email,
		Active:      alert.Active,
		CreatedAt:   alert.CreatedAt,
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// ListActive returns active alerts, optionally filtered by route
func (r *MongoAlertRepository) ListActive(ctx context.Context, routeID uint) ([]*entity.Alert, error) {
	query := bson.M{"active": true}
	if routeID != 0 {
		query["routeId"] = routeID
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*entity.Alert
	for cursor.Next(ctx) {
		var doc alertDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode alert: %w", err)
		}
		alert, err := toAlertEntity(&doc)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, cursor.Err()
}

// MarkTriggered deactivates an alert and records its trigger. The
// active filter in the update makes this a no-op once the alert has
// already fired, so triggering is exactly-once.
func (r *MongoAlertRepository) MarkTriggered(ctx context.Context, alertID, observationID string, triggeredAt time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": alertID, "active": true},
		bson.M{"$set": bson.M{
			"active":                  false,
			"triggeredAt":             triggeredAt,
			"triggeringObservationId": observationID,
		}},
	)
	if err != nil {
		return fmt.Errorf("mark alert %s triggered: %w", alertID, err)
	}
	return nil
}

// Convert stored document to domain entity
func toAlertEntity(doc *alertDoc) (*entity.Alert, error) {
	target, err := decimal.NewFromString(doc.TargetPrice)
	if err != nil {
		return nil, fmt.Errorf("stored target price %q for alert %s: %w", doc.TargetPrice, doc.ID, err)
	}
	return &entity.Alert{
		ID:                      doc.ID,
		RouteID:                 doc.RouteID,
		AirlineCode:             doc.AirlineCode,
		TargetPrice:             target,
		Currency:                doc.Currency,
		Email:                   doc.Email,
		Active:                  doc.Active,
		CreatedAt:               doc.CreatedAt,
		TriggeredAt:             doc.TriggeredAt,
		TriggeringObservationID: doc.TriggeringObservationID,
	}, nil
}
