package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IdempotencyRecord maps a client-supplied key to the response produced by
// the first create bearing that key. Records are written once; the unique
// index on idempotency_key is what makes concurrent creates safe. A TTL
// index reclaims records after the configured window.
type IdempotencyRecord struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"-"`
	IdempotencyKey string        `bson:"idempotency_key" json:"idempotency_key"`
	Response       bson.M        `bson:"response" json:"response"`
	StatusCode     int           `bson:"status_code" json:"status_code"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}
