package repository

import (
	"context"
	"fmt"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EventRepository is append-only: events are inserted once and queried,
// never updated or deleted by the service.
type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(database *mongo.Database, collection string) *EventRepository {
	return &EventRepository{
		collection: database.Collection(collection),
	}
}

func (r *EventRepository) Insert(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = bson.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Find returns events matching filter, most recent first, bounded by limit.
func (r *EventRepository) Find(ctx context.Context, filter bson.M, limit int) ([]models.Event, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	for cursor.Next(ctx) {
		var event models.Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, event)
	}

	return events, cursor.Err()
}
