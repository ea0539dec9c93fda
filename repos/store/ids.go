package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/samborkent/uuidv7"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// NewID returns a time-ordered opaque id.
func NewID() string {
	return uuidv7.New().String()
}

// ValidID reports whether id has the shape of an id produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

func predictionKey(matchID, msv string) string {
	return matchID + "_" + msv
}
