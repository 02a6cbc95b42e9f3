package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"question-bank-service/internal/models"
	"question-bank-service/internal/repository"
	"question-bank-service/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const entityTypeQuestion = "Question"

// QuestionService orchestrates question CRUD: field validation,
// idempotent creation, and audit-event emission.
type QuestionService struct {
	questions   QuestionStore
	idempotency IdempotencyStore
	events      *EventService
}

func NewQuestionService(questions QuestionStore, idempotency IdempotencyStore, events *EventService) *QuestionService {
	return &QuestionService{
		questions:   questions,
		idempotency: idempotency,
		events:      events,
	}
}

// MakeIdempotencyKey derives a deterministic key from request content for
// clients that do not supply their own.
func MakeIdempotencyKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// QuestionFilters narrows question listings.
type QuestionFilters struct {
	CategoryID string
	SourceID   string
	Difficulty string
}

func (f QuestionFilters) build() bson.M {
	filter := bson.M{}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	if f.SourceID != "" {
		filter["source_id"] = f.SourceID
	}
	if f.Difficulty != "" {
		filter["metadata.difficulty"] = f.Difficulty
	}
	return filter
}

// Create validates and stores a new question. When idempotencyKey is
// non-empty, a previously stored response for that key is returned
// verbatim without touching the write path; after a successful write the
// response is stored under the key so retries short-circuit.
func (s *QuestionService) Create(ctx context.Context, input models.QuestionInput, idempotencyKey string) (*models.Question, error) {
	question, err := buildQuestion(input)
	if err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		cached, err := s.cachedResponse(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	id, err := s.questions.Insert(ctx, question)
	if err != nil {
		return nil, err
	}

	// Re-read the stored form so the caller sees exactly what the driver
	// persisted, not the in-memory struct.
	created, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("question %s missing after insert", id.Hex())
	}

	if err := s.events.Log(ctx, models.EventQuestionCreated, id.Hex(), entityTypeQuestion, nil, ""); err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		response, err := toDocument(created)
		if err != nil {
			return nil, err
		}
		if err := s.idempotency.Insert(ctx, idempotencyKey, response, 201); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				// A concurrent create with the same key committed first;
				// its stored response is the canonical one.
				cached, lookupErr := s.cachedResponse(ctx, idempotencyKey)
				if lookupErr != nil {
					return nil, lookupErr
				}
				if cached != nil {
					return cached, nil
				}
			}
			return nil, err
		}
	}

	return created, nil
}

// Get retrieves a question by id.
func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrNotFound
	}
	return question, nil
}

// List returns a page of questions matching filters. The total is the
// full filtered count, independent of the returned slice.
func (s *QuestionService) List(ctx context.Context, page, pageSize int, filters QuestionFilters) (*models.QuestionListResponse, error) {
	page, pageSize = validation.NormalizePagination(page, pageSize)
	filter := filters.build()

	total, err := s.questions.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.questions.Find(ctx, filter, validation.Skip(page, pageSize), pageSize)
	if err != nil {
		return nil, err
	}

	return &models.QuestionListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}

// Update validates the changed fields and applies them atomically,
// returning the updated document. The audit event records exactly the
// fields written.
func (s *QuestionService) Update(ctx context.Context, id string, update models.QuestionUpdate) (*models.Question, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set, err := buildQuestionSet(update)
	if err != nil {
		return nil, err
	}
	set["updated_at"] = time.Now().UTC()

	updated, err := s.questions.UpdateByID(ctx, oid, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	changes := make(map[string]any, len(set))
	for k, v := range set {
		changes[k] = v
	}
	if err := s.events.Log(ctx, models.EventQuestionUpdated, id, entityTypeQuestion, changes, ""); err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a question and reports whether one was removed. The
// deletion event is logged only on actual removal.
func (s *QuestionService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	deleted, err := s.questions.DeleteByID(ctx, oid)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err := s.events.Log(ctx, models.EventQuestionDeleted, id, entityTypeQuestion, nil, ""); err != nil {
		return true, err
	}
	return true, nil
}

// CountByCategory counts the questions referencing a category.
func (s *QuestionService) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return s.questions.Count(ctx, bson.M{"category_id": categoryID})
}

func (s *QuestionService) cachedResponse(ctx context.Context, key string) (*models.Question, error) {
	record, err := s.idempotency.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	var question models.Question
	if err := fromDocument(record.Response, &question); err != nil {
		return nil, fmt.Errorf("failed to decode stored idempotent response: %w", err)
	}
	return &question, nil
}

// buildQuestion validates create input and applies defaults.
func buildQuestion(input models.QuestionInput) (*models.Question, error) {
	text, err := validation.QuestionText(input.Text)
	if err != nil {
		return nil, validationErr(err)
	}

	if len(input.Options) > 0 {
		if err := validation.Options(input.Options); err != nil {
			return nil, validationErr(err)
		}
	}

	answer, err := validation.CorrectAnswer(input.CorrectAnswer, input.Options)
	if err != nil {
		return nil, validationErr(err)
	}

	metadata := models.DefaultMetadata()
	if input.Metadata != nil {
		metadata = *input.Metadata
		if metadata.Difficulty == "" {
			metadata.Difficulty = models.DifficultyMedium
		}
		if metadata.Tags == nil {
			metadata.Tags = []string{}
		}
	}
	if err := validation.Metadata(metadata); err != nil {
		return nil, validationErr(err)
	}

	questionType := input.Type
	if questionType == "" {
		questionType = models.DefaultQuestionType
	}

	options := input.Options
	if options == nil {
		options = []string{}
	}

	return &models.Question{
		Text:          text,
		CategoryID:    input.CategoryID,
		SourceID:      input.SourceID,
		Type:          questionType,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   input.Explanation,
		Metadata:      metadata,
	}, nil
}

// buildQuestionSet validates a partial update and returns the $set body.
func buildQuestionSet(update models.QuestionUpdate) (bson.M, error) {
	set := bson.M{}

	if update.Text != nil {
		text, err := validation.QuestionText(*update.Text)
		if err != nil {
			return nil, validationErr(err)
		}
		set["text"] = text
	}
	if update.CategoryID != nil {
		set["category_id"] = *update.CategoryID
	}
	if update.SourceID != nil {
		set["source_id"] = *update.SourceID
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Options != nil {
		if err := validation.Options(update.Options); err != nil {
			return nil, validationErr(err)
		}
		set["options"] = update.Options
	}
	if update.CorrectAnswer != nil {
		answer, err := validation.CorrectAnswer(*update.CorrectAnswer, update.Options)
		if err != nil {
			return nil, validationErr(err)
		}
		set["correct_answer"] = answer
	}
	if update.Explanation != nil {
		set["explanation"] = *update.Explanation
	}
	if update.Metadata != nil {
		if err := validation.Metadata(*update.Metadata); err != nil {
			return nil, validationErr(err)
		}
		set["metadata"] = *update.Metadata
	}

	return set, nil
}

// toDocument round-trips a value through bson so it can be stored as an
// opaque payload.
func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
