package services

import (
	"context"
	"fmt"
	"time"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BulkService drives batched question operations. One item's failure is
// recorded against its row index and processing continues; a batch never
// aborts early.
type BulkService struct {
	questions    QuestionStore
	events       *EventService
	maxBatchSize int
}

func NewBulkService(questions QuestionStore, events *EventService, maxBatchSize int) *BulkService {
	if maxBatchSize < 1 {
		maxBatchSize = 10000
	}
	return &BulkService{
		questions:    questions,
		events:       events,
		maxBatchSize: maxBatchSize,
	}
}

type BulkError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type BulkImportResult struct {
	Imported int         `json:"imported"`
	Failed   int         `json:"failed"`
	Errors   []BulkError `json:"errors"`
}

type BulkUpdateResult struct {
	Updated int         `json:"updated"`
	Failed  int         `json:"failed"`
	Errors  []BulkError `json:"errors"`
}

type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// BulkExportFilters narrows an export to a category and/or source.
type BulkExportFilters struct {
	CategoryID string
	SourceID   string
}

// Import inserts each item independently. Rows are stamped and written
// without per-field business validation; only storage-level failures
// reject a row.
func (s *BulkService) Import(ctx context.Context, items []models.QuestionInput) (*BulkImportResult, error) {
	if len(items) > s.maxBatchSize {
		return nil, validationErr(fmt.Errorf("batch exceeds maximum size of %d", s.maxBatchSize))
	}

	result := &BulkImportResult{Errors: []BulkError{}}

	for idx, item := range items {
		if err := s.importOne(ctx, item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{Row: idx, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *BulkService) importOne(ctx context.Context, item models.QuestionInput) error {
	metadata := models.DefaultMetadata()
	if item.Metadata != nil {
		metadata = *item.Metadata
		if metadata.Difficulty == "" {
			metadata.Difficulty = models.DifficultyMedium
		}
		if metadata.Tags == nil {
			metadata.Tags = []string{}
		}
	}

	questionType := item.Type
	if questionType == "" {
		questionType = models.DefaultQuestionType
	}
	options := item.Options
	if options == nil {
		options = []string{}
	}

	now := time.Now().UTC()
	question := &models.Question{
		Text:          item.Text,
		CategoryID:    item.CategoryID,
		SourceID:      item.SourceID,
		Type:          questionType,
		Options:       options,
		CorrectAnswer: item.CorrectAnswer,
		Explanation:   item.Explanation,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.questions.Insert(ctx, question)
	if err != nil {
		return err
	}

	return s.events.Log(ctx, models.EventBulkImport, id.Hex(), entityTypeQuestion, nil, "")
}

// Export returns every question matching the filters.
func (s *BulkService) Export(ctx context.Context, filters BulkExportFilters) ([]models.Question, error) {
	filter := bson.M{}
	if filters.CategoryID != "" {
		filter["category_id"] = filters.CategoryID
	}
	if filters.SourceID != "" {
		filter["source_id"] = filters.SourceID
	}

	return s.questions.FindAll(ctx, filter)
}

// Update applies each item's fields to the question named by its "id"
// key. Missing or malformed ids and unmatched documents fail that row
// only.
func (s *BulkService) Update(ctx context.Context, items []map[string]any) (*BulkUpdateResult, error) {
	if len(items) > s.maxBatchSize {
		return nil, validationErr(fmt.Errorf("batch exceeds maximum size of %d", s.maxBatchSize))
	}

	result := &BulkUpdateResult{Errors: []BulkError{}}

	for idx, item := range items {
		if err := s.updateOne(ctx, item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{Row: idx, Error: err.Error()})
			continue
		}
		result.Updated++
	}

	return result, nil
}

func (s *BulkService) updateOne(ctx context.Context, item map[string]any) error {
	rawID, ok := item["id"].(string)
	if !ok || rawID == "" {
		return fmt.Errorf("missing question id")
	}

	oid, err := parseObjectID(rawID)
	if err != nil {
		return err
	}

	set := bson.M{}
	for key, value := range item {
		if key == "id" || key == "_id" {
			continue
		}
		set[key] = value
	}
	set["updated_at"] = time.Now().UTC()

	updated, err := s.questions.UpdateByID(ctx, oid, set)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("question not found")
	}

	changes := make(map[string]any, len(set))
	for k, v := range set {
		changes[k] = v
	}
	return s.events.Log(ctx, models.EventQuestionUpdated, rawID, entityTypeQuestion, changes, "")
}

// Delete removes each id independently; malformed ids and unmatched
// documents count as failures.
func (s *BulkService) Delete(ctx context.Context, ids []string) (*BulkDeleteResult, error) {
	if len(ids) > s.maxBatchSize {
		return nil, validationErr(fmt.Errorf("batch exceeds maximum size of %d", s.maxBatchSize))
	}

	result := &BulkDeleteResult{}

	for _, id := range ids {
		oid, err := parseObjectID(id)
		if err != nil {
			result.Failed++
			continue
		}

		deleted, err := s.questions.DeleteByID(ctx, oid)
		if err != nil || !deleted {
			result.Failed++
			continue
		}

		if err := s.events.Log(ctx, models.EventQuestionDeleted, id, entityTypeQuestion, nil, ""); err != nil {
			result.Failed++
			continue
		}
		result.Deleted++
	}

	return result, nil
}
