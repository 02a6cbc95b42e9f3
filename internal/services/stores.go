package services

import (
	"context"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store interfaces abstract the persistence gateway. The repository
// package provides the MongoDB implementations; tests substitute
// in-memory fakes.

type QuestionStore interface {
	Insert(ctx context.Context, question *models.Question) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Question, error)
	Find(ctx context.Context, filter bson.M, skip, limit int) ([]models.Question, error)
	FindAll(ctx context.Context, filter bson.M) ([]models.Question, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Question, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
	GroupCount(ctx context.Context, field string) (map[string]int64, error)
}

type CategoryStore interface {
	Insert(ctx context.Context, category *models.Category) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Category, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
}

type SourceStore interface {
	Insert(ctx context.Context, source *models.Source) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Source, error)
	FindAll(ctx context.Context) ([]models.Source, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Source, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
}

type EventStore interface {
	Insert(ctx context.Context, event *models.Event) error
	Find(ctx context.Context, filter bson.M, limit int) ([]models.Event, error)
}

type IdempotencyStore interface {
	FindByKey(ctx context.Context, key string) (*models.IdempotencyRecord, error)
	Insert(ctx context.Context, key string, response bson.M, statusCode int) error
}

// BrokerPublisher pushes mutation events to the message broker. Publishing
// is best-effort; the mongo event log is the audit source of truth.
type BrokerPublisher interface {
	Publish(eventType string, payload any) error
}
