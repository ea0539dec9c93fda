package store

import (
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection       = "users"
	matchesCollection     = "matches"
	predictionsCollection = "predictions"
	votesCollection       = "favorite_teams"
)

// Firestore is the production document store.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// translate maps Firestore status codes onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
		return err
	}
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrDuplicate
	}
	return err
}

func decode(doc *firestore.DocumentSnapshot, v any) error {
	if err := doc.DataTo(v); err != nil {
		// We write every document ourselves, so a failure here means the
		// stored shape drifted from the struct.
		return fmt.Errorf("consistency error. Converting %s to %T failed: %w", doc.Ref.Path, v, err)
	}
	return nil
}
