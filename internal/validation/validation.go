package validation

import (
	"fmt"
	"regexp"
	"strings"

	"question-bank-service/internal/models"
)

const (
	MaxQuestionTextLength = 10000
	MaxNameLength         = 100
	MaxDescriptionLength  = 1000
	MinOptions            = 2
	MaxOptions            = 10
	MinYear               = 1900
	MaxYear               = 2100
)

var urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

// QuestionText trims and validates question text.
func QuestionText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("question text cannot be empty")
	}
	if len(text) > MaxQuestionTextLength {
		return "", fmt.Errorf("question text exceeds maximum length of %d characters", MaxQuestionTextLength)
	}
	return trimmed, nil
}

// Options validates an answer-option list: 2..10 entries, no duplicates.
func Options(options []string) error {
	if len(options) < MinOptions {
		return fmt.Errorf("at least %d options are required", MinOptions)
	}
	if len(options) > MaxOptions {
		return fmt.Errorf("maximum %d options allowed", MaxOptions)
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("duplicate options are not allowed")
		}
		seen[opt] = struct{}{}
	}
	return nil
}

// CorrectAnswer trims and validates the correct answer. When options is
// non-empty the answer must be one of them.
func CorrectAnswer(answer string, options []string) (string, error) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return "", fmt.Errorf("correct answer cannot be empty")
	}
	if len(options) > 0 {
		found := false
		for _, opt := range options {
			if answer == opt {
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("correct answer must be one of the provided options")
		}
	}
	return trimmed, nil
}

// Metadata validates the embedded question metadata block.
func Metadata(m models.Metadata) error {
	if m.TimeLimitSeconds != nil && *m.TimeLimitSeconds < 0 {
		return fmt.Errorf("time limit must be positive")
	}
	if m.PassingScore != nil {
		if *m.PassingScore < 0 || *m.PassingScore > 100 {
			return fmt.Errorf("passing score must be between 0 and 100")
		}
	}
	if m.Difficulty != "" && !models.ValidDifficulty(string(m.Difficulty)) {
		return fmt.Errorf("invalid difficulty level")
	}
	return nil
}

// CategoryName trims and validates a category name.
func CategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("category name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("category name exceeds maximum length")
	}
	return trimmed, nil
}

// CategoryDescription validates an optional category description.
func CategoryDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length")
	}
	return nil
}

// SourceName trims and validates a source name.
func SourceName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("source name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("source name exceeds maximum length")
	}
	return trimmed, nil
}

// SourceURL validates an optional source URL.
func SourceURL(url string) error {
	if url != "" && !urlPattern.MatchString(url) {
		return fmt.Errorf("invalid URL format")
	}
	return nil
}

// SourceYear validates an optional publication year.
func SourceYear(year *int) error {
	if year != nil && (*year < MinYear || *year > MaxYear) {
		return fmt.Errorf("invalid year")
	}
	return nil
}
