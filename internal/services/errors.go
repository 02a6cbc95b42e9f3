package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound means the id was well-formed but no record matched.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID means the id failed the 24-hex identifier format check.
	ErrInvalidID = errors.New("invalid id format")
)

// ValidationError wraps a field-validation failure so handlers can map it
// to a client error without string matching.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validationErr(err error) error {
	return &ValidationError{Err: err}
}

// parseObjectID checks the identifier format before any storage call.
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return oid, nil
}
