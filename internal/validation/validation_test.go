package validation

import (
	"strings"
	"testing"

	"question-bank-service/internal/models"
)

func TestQuestionText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"valid", "What is 2+2?", "What is 2+2?", false},
		{"trims whitespace", "  What is 2+2?  ", "What is 2+2?", false},
		{"empty", "", "", true},
		{"whitespace only", "   \t  ", "", true},
		{"too long", strings.Repeat("a", MaxQuestionTextLength+1), "", true},
		{"at limit", strings.Repeat("a", MaxQuestionTextLength), strings.Repeat("a", MaxQuestionTextLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuestionText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("QuestionText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("QuestionText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		wantErr bool
	}{
		{"valid", []string{"A", "B", "C"}, false},
		{"minimum two", []string{"A", "B"}, false},
		{"duplicates", []string{"A", "B", "A"}, true},
		{"too few", []string{"A"}, true},
		{"empty", []string{}, true},
		{"too many", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Options(tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("Options(%v) error = %v, wantErr %v", tt.options, err, tt.wantErr)
			}
		})
	}
}

func TestCorrectAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		options []string
		wantErr bool
	}{
		{"in options", "B", []string{"A", "B", "C"}, false},
		{"not in options", "D", []string{"A", "B", "C"}, true},
		{"empty answer", "", []string{"A", "B"}, true},
		{"whitespace answer", "   ", []string{"A", "B"}, true},
		{"no options means free-form", "anything", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CorrectAnswer(tt.answer, tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("CorrectAnswer(%q, %v) error = %v, wantErr %v", tt.answer, tt.options, err, tt.wantErr)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		metadata models.Metadata
		wantErr  bool
	}{
		{"defaults", models.DefaultMetadata(), false},
		{"passing score too high", models.Metadata{Difficulty: models.DifficultyEasy, PassingScore: floatPtr(150)}, true},
		{"passing score negative", models.Metadata{Difficulty: models.DifficultyEasy, PassingScore: floatPtr(-1)}, true},
		{"passing score boundary", models.Metadata{Difficulty: models.DifficultyEasy, PassingScore: floatPtr(100)}, false},
		{"negative time limit", models.Metadata{Difficulty: models.DifficultyHard, TimeLimitSeconds: intPtr(-5)}, true},
		{"zero time limit", models.Metadata{Difficulty: models.DifficultyHard, TimeLimitSeconds: intPtr(0)}, false},
		{"unknown difficulty", models.Metadata{Difficulty: "impossible"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Metadata(tt.metadata)
			if (err != nil) != tt.wantErr {
				t.Errorf("Metadata(%+v) error = %v, wantErr %v", tt.metadata, err, tt.wantErr)
			}
		})
	}
}

func TestSourceURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"empty allowed", "", false},
		{"http", "http://example.com/paper.pdf", false},
		{"https", "https://example.com", false},
		{"no scheme", "example.com", true},
		{"ftp", "ftp://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SourceURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("SourceURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSourceYear(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name    string
		year    *int
		wantErr bool
	}{
		{"nil allowed", nil, false},
		{"valid", intPtr(2023), false},
		{"lower bound", intPtr(1900), false},
		{"upper bound", intPtr(2100), false},
		{"too old", intPtr(1899), true},
		{"too far out", intPtr(2101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SourceYear(tt.year)
			if (err != nil) != tt.wantErr {
				t.Errorf("SourceYear error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
