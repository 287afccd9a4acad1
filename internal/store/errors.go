package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when a write violates a unique index. The
// index is the single source of truth for uniqueness; repositories never
// pre-check before inserting.
var ErrDuplicateKey = errors.New("duplicate key")

func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
