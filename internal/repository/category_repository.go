package repository

import (
	"context"
	"fmt"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(database *mongo.Database, collection string) *CategoryRepository {
	return &CategoryRepository{
		collection: database.Collection(collection),
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, category *models.Category) (bson.ObjectID, error) {
	if category.ID.IsZero() {
		category.ID = bson.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return category.ID, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	for cursor.Next(ctx) {
		var category models.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, cursor.Err()
}

func (r *CategoryRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Category, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Category
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &updated, nil
}

func (r *CategoryRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return result.DeletedCount > 0, nil
}
