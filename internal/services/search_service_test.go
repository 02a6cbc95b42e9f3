package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"question-bank-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBuildSearchFilter(t *testing.T) {
	spec := SearchSpec{
		Text:       "gravity",
		CategoryID: "cat-1",
		SourceID:   "src-1",
		Difficulty: "hard",
		Tags:       []string{"physics", "mechanics"},
		StartDate:  "2024-01-01",
		EndDate:    "2024-12-31",
	}

	filter, err := buildSearchFilter(spec)
	if err != nil {
		t.Fatalf("buildSearchFilter failed: %v", err)
	}

	if _, ok := filter["$or"].([]bson.M); !ok {
		t.Error("text predicate missing $or block")
	}
	if filter["category_id"] != "cat-1" {
		t.Errorf("category_id = %v", filter["category_id"])
	}
	if filter["source_id"] != "src-1" {
		t.Errorf("source_id = %v", filter["source_id"])
	}
	if filter["metadata.difficulty"] != "hard" {
		t.Errorf("metadata.difficulty = %v", filter["metadata.difficulty"])
	}

	tags, ok := filter["metadata.tags"].(bson.M)
	if !ok {
		t.Fatal("tags predicate missing")
	}
	if in, ok := tags["$in"].([]string); !ok || len(in) != 2 {
		t.Errorf("tags $in = %v", tags["$in"])
	}

	dateRange, ok := filter["created_at"].(bson.M)
	if !ok {
		t.Fatal("created_at range missing")
	}
	start := dateRange["$gte"].(time.Time)
	end := dateRange["$lte"].(time.Time)
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range start = %v", start)
	}
	if !end.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range end = %v", end)
	}
}

func TestBuildSearchFilterEmptySpec(t *testing.T) {
	filter, err := buildSearchFilter(SearchSpec{})
	if err != nil {
		t.Fatalf("buildSearchFilter failed: %v", err)
	}
	if len(filter) != 0 {
		t.Errorf("empty spec built non-empty filter: %v", filter)
	}
}

func TestBuildSearchFilterRejectsMalformedDates(t *testing.T) {
	_, err := buildSearchFilter(SearchSpec{StartDate: "last tuesday", EndDate: "2024-12-31"})

	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildSearchFilterIgnoresHalfOpenRange(t *testing.T) {
	filter, err := buildSearchFilter(SearchSpec{StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("buildSearchFilter failed: %v", err)
	}
	if _, ok := filter["created_at"]; ok {
		t.Error("date range should require both bounds")
	}
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"2024-06-15", false},
		{"2024-06-15T10:30:00Z", false},
		{"15/06/2024", true},
		{"", true},
	}

	for _, tt := range tests {
		if _, err := parseISODate(tt.value); (err != nil) != tt.wantErr {
			t.Errorf("parseISODate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestStatistics(t *testing.T) {
	questions := newFakeQuestionStore()
	service := NewSearchService(questions)

	seed := []models.Question{
		{Text: "a", CategoryID: "cat-1", SourceID: "src-1", Metadata: models.Metadata{Difficulty: models.DifficultyEasy}},
		{Text: "b", CategoryID: "cat-1", SourceID: "src-2", Metadata: models.Metadata{Difficulty: models.DifficultyEasy}},
		{Text: "c", CategoryID: "cat-2", SourceID: "src-1", Metadata: models.Metadata{Difficulty: models.DifficultyHard}},
	}
	for i := range seed {
		if _, err := questions.Insert(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}

	stats, err := service.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}

	if stats.TotalQuestions != 3 {
		t.Errorf("total = %d, want 3", stats.TotalQuestions)
	}
	if stats.ByDifficulty["easy"] != 2 || stats.ByDifficulty["hard"] != 1 {
		t.Errorf("by_difficulty = %v", stats.ByDifficulty)
	}
	if stats.ByCategory["cat-1"] != 2 || stats.ByCategory["cat-2"] != 1 {
		t.Errorf("by_category = %v", stats.ByCategory)
	}
	if stats.BySource["src-1"] != 2 || stats.BySource["src-2"] != 1 {
		t.Errorf("by_source = %v", stats.BySource)
	}
}

func TestByDifficultyPaginates(t *testing.T) {
	questions := newFakeQuestionStore()
	service := NewSearchService(questions)

	for i := 0; i < 4; i++ {
		q := models.Question{Text: "q", Metadata: models.Metadata{Difficulty: models.DifficultyEasy}}
		if _, err := questions.Insert(context.Background(), &q); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}

	result, err := service.ByDifficulty(context.Background(), "easy", 2, 3)
	if err != nil {
		t.Fatalf("ByDifficulty failed: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("total = %d, want 4", result.Total)
	}
	if len(result.Items) != 1 {
		t.Errorf("second page holds %d items, want 1", len(result.Items))
	}
}
