package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrDuplicateKey is returned when an idempotency record already exists
// for a key. The unique index enforces this atomically; a duplicate here
// means a concurrent writer committed first.
var ErrDuplicateKey = errors.New("idempotency key already exists")

type IdempotencyRepository struct {
	collection *mongo.Collection
}

func NewIdempotencyRepository(database *mongo.Database, collection string) *IdempotencyRepository {
	return &IdempotencyRepository{
		collection: database.Collection(collection),
	}
}

// FindByKey looks up a stored response; nil when the key is unknown.
// Pure read, no side effects.
func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	var record models.IdempotencyRecord
	err := r.collection.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find idempotency record: %w", err)
	}

	return &record, nil
}

// Insert stores the response produced for a key. Exactly one insert per
// key can succeed; later attempts get ErrDuplicateKey.
func (r *IdempotencyRepository) Insert(ctx context.Context, key string, response bson.M, statusCode int) error {
	record := models.IdempotencyRecord{
		ID:             bson.NewObjectID(),
		IdempotencyKey: key,
		Response:       response,
		StatusCode:     statusCode,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert idempotency record: %w", err)
	}
	return nil
}
