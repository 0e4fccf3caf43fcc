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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHistoryRepository implements HistoryRepository over the
// price_observations collection. Inserts only; the pipeline never
// updates or deletes stored observations.
type MongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new price history repository
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	collection := db.Collection("price_observations")

	ctx := context.Background()
	pairIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "routeId", Value: 1}, {Key: "airlineCode", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, pairIndex)

	observedIndex := mongo.IndexModel{
		Keys: bson.M{"observedAt": 1},
	}
	collection.Indexes().CreateOne(ctx, observedIndex)

	return &MongoHistoryRepository{
		collection: collection,
	}
}

// Stored document shape. Price is kept as a string to avoid float
// rounding in bson.
type observationDoc struct {
	ID          string    `bson:"_id"`
	RouteID     uint      `bson:"routeId"`
	AirlineCode string    `bson:"airlineCode"`
	Price       string    `bson:"price"`
	Currency    string    `bson:"currency"`
	CabinClass  string    `bson:"cabinClass"`
	ObservedAt  time.Time `bson:"observedAt"`
	Source      string    `bson:"source"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// AppendBatch inserts all observations of one fetch run and returns
// their storage ids in input order
func (r *MongoHistoryRepository) AppendBatch(ctx context.Context, observations []*entity.PriceObservation) ([]string, error) {
	if len(observations) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	ids := make([]string, len(observations))
	docs := make([]interface{}, len(observations))
	for i, obs := range observations {
		id := obs.ID
		if id == "" {
			id = primitive.NewObjectID().Hex()
		}
		ids[i] = id
		docs[i] = observationDoc{
			ID:          id,
			RouteID:     obs.RouteID,
			AirlineCode: obs.AirlineCode,
			Price:       obs.Price.String(),
			Currency:    obs.Currency,
			CabinClass:  obs.CabinClass,
			ObservedAt:  obs.ObservedAt,
			Source:      obs.Source,
			CreatedAt:   now,
		}
	}

	// Ordered insert so ObjectID order matches input order, which is
	// the insertion-order tie break for same-timestamp queries.
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return nil, fmt.Errorf("append observations: %w", err)
	}

	for i, obs := range observations {
		obs.ID = ids[i]
	}
	return ids, nil
}

// Query returns observations matching the filter ordered by observedAt,
// ties broken by insertion order
func (r *MongoHistoryRepository) Query(ctx context.Context, filter repository.HistoryFilter) ([]*entity.PriceObservation, error) {
	query := bson.M{}
	if filter.RouteID != 0 {
		query["routeId"] = filter.RouteID
	}
	if filter.AirlineCode != "" {
		query["airlineCode"] = filter.AirlineCode
	}
	timeRange := bson.M{}
	if !filter.From.IsZero() {
		timeRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		timeRange["$lte"] = filter.To
	}
	if len(timeRange) > 0 {
		query["observedAt"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "observedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer cursor.Close(ctx)

	var observations []*entity.PriceObservation
	for cursor.Next(ctx) {
		var doc observationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode observation: %w", err)
		}
		obs, err := toObservationEntity(&doc)
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	return observations, cursor.Err()
}

// Convert stored document to domain entity
func toObservationEntity(doc *observationDoc) (*entity.PriceObservation, error) {
	price, err := decimal.NewFromString(doc.Price)
	if err != nil {
		return nil, fmt.Errorf("stored price %q for observation %s: %w", doc.Price, doc.ID, err)
	}
	return &entity.PriceObservation{
		ID:          doc.ID,
		RouteID:     doc.RouteID,
		AirlineCode: doc.AirlineCode,
		Price:       price,
		Currency:    doc.Currency,
		CabinClass:  doc.CabinClass,
		ObservedAt:  doc.ObservedAt,
		Source:      doc.Source,
	}, nil
}
