package services

import (
	"context"
	"fmt"
	"time"

	"question-bank-service/internal/models"
	"question-bank-service/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SearchService builds filter predicates and aggregation pipelines over
// the question collection.
type SearchService struct {
	questions QuestionStore
}

func NewSearchService(questions QuestionStore) *SearchService {
	return &SearchService{questions: questions}
}

// SearchSpec is a conjunction of optional predicates for advanced search.
type SearchSpec struct {
	Text       string
	CategoryID string
	SourceID   string
	Difficulty string
	Tags       []string
	StartDate  string
	EndDate    string
}

// TextSearch matches the query case-insensitively against question text,
// explanation, and tags.
func (s *SearchService) TextSearch(ctx context.Context, query string, page, pageSize int) (*models.QuestionListResponse, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"text": bson.M{"$regex": query, "$options": "i"}},
			{"explanation": bson.M{"$regex": query, "$options": "i"}},
			{"metadata.tags": bson.M{"$regex": query, "$options": "i"}},
		},
	}
	return s.page(ctx, filter, page, pageSize)
}

// AdvancedSearch AND-combines every predicate set on the SearchSpec.
func (s *SearchService) AdvancedSearch(ctx context.Context, spec SearchSpec, page, pageSize int) (*models.QuestionListResponse, error) {
	filter, err := buildSearchFilter(spec)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, filter, page, pageSize)
}

// ByDifficulty is the exact-match shortcut.
func (s *SearchService) ByDifficulty(ctx context.Context, difficulty string, page, pageSize int) (*models.QuestionListResponse, error) {
	return s.page(ctx, bson.M{"metadata.difficulty": difficulty}, page, pageSize)
}

// Statistics scans the full collection: total plus group-counts by
// difficulty, category, and source. Admin/reporting use only.
func (s *SearchService) Statistics(ctx context.Context) (*models.StatisticsResponse, error) {
	total, err := s.questions.Count(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	byDifficulty, err := s.questions.GroupCount(ctx, "metadata.difficulty")
	if err != nil {
		return nil, err
	}
	byCategory, err := s.questions.GroupCount(ctx, "category_id")
	if err != nil {
		return nil, err
	}
	bySource, err := s.questions.GroupCount(ctx, "source_id")
	if err != nil {
		return nil, err
	}

	return &models.StatisticsResponse{
		TotalQuestions: total,
		ByDifficulty:   byDifficulty,
		ByCategory:     byCategory,
		BySource:       bySource,
	}, nil
}

func (s *SearchService) page(ctx context.Context, filter bson.M, page, pageSize int) (*models.QuestionListResponse, error) {
	page, pageSize = validation.NormalizePagination(page, pageSize)

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

// buildSearchFilter translates a SearchSpec into a mongo filter document.
// Malformed dates fail with a validation error before any storage call.
func buildSearchFilter(spec SearchSpec) (bson.M, error) {
	filter := bson.M{}

	if spec.Text != "" {
		filter["$or"] = []bson.M{
			{"text": bson.M{"$regex": spec.Text, "$options": "i"}},
			{"explanation": bson.M{"$regex": spec.Text, "$options": "i"}},
		}
	}
	if spec.CategoryID != "" {
		filter["category_id"] = spec.CategoryID
	}
	if spec.SourceID != "" {
		filter["source_id"] = spec.SourceID
	}
	if spec.Difficulty != "" {
		filter["metadata.difficulty"] = spec.Difficulty
	}
	if len(spec.Tags) > 0 {
		filter["metadata.tags"] = bson.M{"$in": spec.Tags}
	}
	if spec.StartDate != "" && spec.EndDate != "" {
		start, err := parseISODate(spec.StartDate)
		if err != nil {
			return nil, validationErr(err)
		}
		end, err := parseISODate(spec.EndDate)
		if err != nil {
			return nil, validationErr(err)
		}
		filter["created_at"] = bson.M{"$gte": start, "$lte": end}
	}

	return filter, nil
}

func parseISODate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format, use ISO format: YYYY-MM-DD")
}
