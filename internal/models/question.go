package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DifficultyLevel is the coarse difficulty bucket for a question.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// ValidDifficulty reports whether s is one of the known difficulty levels.
func ValidDifficulty(s string) bool {
	switch DifficultyLevel(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const DefaultQuestionType = "multiple_choice"

// Metadata is embedded in a question, not a separate entity.
type Metadata struct {
	Tags             []string        `bson:"tags" json:"tags"`
	Difficulty       DifficultyLevel `bson:"difficulty" json:"difficulty"`
	TimeLimitSeconds *int            `bson:"time_limit_seconds,omitempty" json:"time_limit_seconds,omitempty"`
	PassingScore     *float64        `bson:"passing_score,omitempty" json:"passing_score,omitempty"`
	IsActive         bool            `bson:"is_active" json:"is_active"`
}

// DefaultMetadata returns the metadata applied when a question is created
// without any.
func DefaultMetadata() Metadata {
	return Metadata{
		Tags:       []string{},
		Difficulty: DifficultyMedium,
		IsActive:   true,
	}
}

type Question struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Text          string        `bson:"text" json:"text"`
	CategoryID    string        `bson:"category_id" json:"category_id"`
	SourceID      string        `bson:"source_id" json:"source_id"`
	Type          string        `bson:"type" json:"type"`
	Options       []string      `bson:"options" json:"options"`
	CorrectAnswer string        `bson:"correct_answer" json:"correct_answer"`
	Explanation   string        `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Metadata      Metadata      `bson:"metadata" json:"metadata"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// QuestionInput is the request shape for creating a question. Metadata is a
// pointer so an omitted block can be told apart from an explicit one.
type QuestionInput struct {
	Text          string    `json:"text"`
	CategoryID    string    `json:"category_id"`
	SourceID      string    `json:"source_id"`
	Type          string    `json:"type"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	Metadata      *Metadata `json:"metadata"`
}

// QuestionUpdate carries the fields of a partial update; nil means "leave
// unchanged".
type QuestionUpdate struct {
	Text          *string   `json:"text"`
	CategoryID    *string   `json:"category_id"`
	SourceID      *string   `json:"source_id"`
	Type          *string   `json:"type"`
	Options       []string  `json:"options"`
	CorrectAnswer *string   `json:"correct_answer"`
	Explanation   *string   `json:"explanation"`
	Metadata      *Metadata `json:"metadata"`
}

type QuestionListResponse struct {
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Items    []Question `json:"items"`
}
