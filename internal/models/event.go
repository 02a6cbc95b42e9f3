package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EventType identifies the mutation an audit event records.
type EventType string

const (
	EventQuestionCreated EventType = "question.created"
	EventQuestionUpdated EventType = "question.updated"
	EventQuestionDeleted EventType = "question.deleted"
	EventBulkImport      EventType = "bulk.import"
	EventBulkExport      EventType = "bulk.export"
)

// Event is an append-only audit record. Events are never updated or
// deleted except by storage-level retention.
type Event struct {
	ID         bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventType  EventType      `bson:"event_type" json:"event_type"`
	EntityID   string         `bson:"entity_id" json:"entity_id"`
	EntityType string         `bson:"entity_type" json:"entity_type"`
	Changes    map[string]any `bson:"changes" json:"changes"`
	UserID     string         `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}

type EventListResponse struct {
	Total  int     `json:"total"`
	Events []Event `json:"events"`
}
