package repository

import (
	"context"
	"fmt"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SourceRepository struct {
	collection *mongo.Collection
}

func NewSourceRepository(database *mongo.Database, collection string) *SourceRepository {
	return &SourceRepository{
		collection: database.Collection(collection),
	}
}

func (r *SourceRepository) Insert(ctx context.Context, source *models.Source) (bson.ObjectID, error) {
	if source.ID.IsZero() {
		source.ID = bson.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, source)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("failed to insert source: %w", err)
	}

	return source.ID, nil
}

func (r *SourceRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Source, error) {
	var source models.Source
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&source)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find source: %w", err)
	}

	return &source, nil
}

func (r *SourceRepository) FindAll(ctx context.Context) ([]models.Source, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find sources: %w", err)
	}
	defer cursor.Close(ctx)

	sources := []models.Source{}
	for cursor.Next(ctx) {
		var source models.Source
		if err := cursor.Decode(&source); err != nil {
			return nil, fmt.Errorf("failed to decode source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, cursor.Err()
}

func (r *SourceRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Source, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Source
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update source: %w", err)
	}

	return &updated, nil
}

func (r *SourceRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete source: %w", err)
	}
	return result.DeletedCount > 0, nil
}
