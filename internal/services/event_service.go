package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const MaxEventQueryLimit = 1000

// EventService appends immutable audit records for entity mutations and
// serves the audit trail. Append failures propagate to the caller: a
// mutation whose event cannot be recorded reports the error.
type EventService struct {
	events    EventStore
	publisher BrokerPublisher
}

func NewEventService(events EventStore, publisher BrokerPublisher) *EventService {
	return &EventService{
		events:    events,
		publisher: publisher,
	}
}

// Log appends an audit event and forwards it to the broker. The broker
// publish is fire-and-forget; only the store write can fail the mutation.
func (s *EventService) Log(
	ctx context.Context,
	eventType models.EventType,
	entityID string,
	entityType string,
	changes map[string]any,
	userID string,
) error {
	if changes == nil {
		changes = map[string]any{}
	}

	event := &models.Event{
		EventType:  eventType,
		EntityID:   entityID,
		EntityType: entityType,
		Changes:    changes,
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return fmt.Errorf("failed to log event %s: %w", eventType, err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(string(eventType), event); err != nil {
			log.Printf("Failed to publish event %s for %s: %v", eventType, entityID, err)
		}
	}

	return nil
}

// List returns events for the audit trail, most recent first. The limit
// is clamped to MaxEventQueryLimit.
func (s *EventService) List(ctx context.Context, entityID, entityType string, limit int) ([]models.Event, error) {
	if limit < 1 {
		limit = 100
	}
	if limit > MaxEventQueryLimit {
		limit = MaxEventQueryLimit
	}

	filter := bson.M{}
	if entityID != "" {
		filter["entity_id"] = entityID
	}
	if entityType != "" {
		filter["entity_type"] = entityType
	}

	return s.events.Find(ctx, filter, limit)
}
