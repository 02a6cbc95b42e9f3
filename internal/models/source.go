package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Source struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	URL       string        `bson:"url,omitempty" json:"url,omitempty"`
	Year      *int          `bson:"year,omitempty" json:"year,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

type SourceInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Year *int   `json:"year"`
}

type SourceUpdate struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
	Year *int    `json:"year"`
}
