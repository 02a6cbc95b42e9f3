package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"question-bank-service/internal/config"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	Client   *mongo.Client
	Database *mongo.Database
)

// Collection names used across the service.
const (
	QuestionsCollection   = "questions"
	CategoriesCollection  = "categories"
	SourcesCollection     = "sources"
	IdempotencyCollection = "idempotency_keys"
	EventsCollection      = "events"
)

// Init connects the shared client, verifies the connection, and creates
// the service indexes.
func Init(cfg *config.MongoDBConfig, idempotencyTTL time.Duration) error {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.PoolSize)

	var err error
	Client, err = mongo.Connect(clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := Client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	Database = Client.Database(cfg.Database)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer idxCancel()
	if err := createIndexes(idxCtx, idempotencyTTL); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Printf("Successfully connected to MongoDB database: %s", cfg.Database)
	return nil
}

func createIndexes(ctx context.Context, idempotencyTTL time.Duration) error {
	questionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "source_id", Value: 1}}},
		{Keys: bson.D{{Key: "metadata.difficulty", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := Database.Collection(QuestionsCollection).Indexes().CreateMany(ctx, questionIndexes); err != nil {
		return fmt.Errorf("questions indexes: %w", err)
	}

	// The unique key index is the sole guard against concurrent creates
	// reusing one idempotency key; the TTL index reclaims stale records.
	idempotencyIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(idempotencyTTL.Seconds())),
		},
	}
	if _, err := Database.Collection(IdempotencyCollection).Indexes().CreateMany(ctx, idempotencyIndexes); err != nil {
		return fmt.Errorf("idempotency indexes: %w", err)
	}

	eventIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "entity_id", Value: 1}}},
	}
	if _, err := Database.Collection(EventsCollection).Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}

	return nil
}

// Disconnect closes the shared MongoDB connection.
func Disconnect() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}
}

// GetCollection returns a collection from the shared database handle.
func GetCollection(name string) *mongo.Collection {
	return Database.Collection(name)
}
