package repository

import (
	"context"
	"fmt"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type QuestionRepository struct {
	collection *mongo.Collection
}

func NewQuestionRepository(database *mongo.Database, collection string) *QuestionRepository {
	return &QuestionRepository{
		collection: database.Collection(collection),
	}
}

// Insert writes a new question and returns the assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, question *models.Question) (bson.ObjectID, error) {
	if question.ID.IsZero() {
		question.ID = bson.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, question)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("failed to insert question: %w", err)
	}

	return question.ID, nil
}

// FindByID retrieves a question by id; nil when no document matches.
func (r *QuestionRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Question, error) {
	var question models.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	return &question, nil
}

// Find retrieves a page of questions matching filter.
func (r *QuestionRepository) Find(ctx context.Context, filter bson.M, skip, limit int) ([]models.Question, error) {
	findOpts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	for cursor.Next(ctx) {
		var q models.Question
		if err := cursor.Decode(&q); err != nil {
			return nil, fmt.Errorf("failed to decode question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, cursor.Err()
}

// FindAll retrieves every question matching filter, without pagination.
func (r *QuestionRepository) FindAll(ctx context.Context, filter bson.M) ([]models.Question, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	for cursor.Next(ctx) {
		var q models.Question
		if err := cursor.Decode(&q); err != nil {
			return nil, fmt.Errorf("failed to decode question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, cursor.Err()
}

// Count returns the number of questions matching filter.
func (r *QuestionRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// UpdateByID applies a $set atomically and returns the updated document,
// or nil when no document matches.
func (r *QuestionRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Question, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Question
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return &updated, nil
}

// DeleteByID removes a question and reports whether one was removed.
func (r *QuestionRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete question: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// GroupCount aggregates document counts grouped by the given field path.
func (r *QuestionRepository) GroupCount(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    any   `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode group count: %w", err)
		}
		counts[groupKey(row.ID)] = row.Count
	}

	return counts, cursor.Err()
}

// groupKey normalizes an aggregation _id to a map key. Documents missing
// the grouped field produce a null id.
func groupKey(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case bson.ObjectID:
		return v.Hex()
	default:
		return fmt.Sprintf("%v", v)
	}
}
