package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
)

func docToUser(doc *firestore.DocumentSnapshot) (*User, error) {
	var u User
	if err := decode(doc, &u); err != nil {
		return nil, err
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

// CreateUser assigns u.ID and stores u unless its MSV is already taken.
func (s *Firestore) CreateUser(ctx context.Context, u *User) error {
	col := s.client.Collection(usersCollection)
	id := NewID()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(col.Where("msv", "==", u.MSV).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			return ErrDuplicate
		}
		return tx.Create(col.Doc(id), u)
	})
	if err != nil {
		return xerrors.Errorf("create user %s: %w", u.MSV, translate(err))
	}
	u.ID = id
	return nil
}

func (s *Firestore) GetUser(ctx context.Context, id string) (*User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, xerrors.Errorf("get user %s: %w", id, translate(err))
	}
	return docToUser(doc)
}

func (s *Firestore) GetUserByMSV(ctx context.Context, msv string) (*User, error) {
	docs, err := s.client.Collection(usersCollection).
		Where("msv", "==", msv).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, xerrors.Errorf("find user %s: %w", msv, translate(err))
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docToUser(docs[0])
}

func (s *Firestore) ListUsers(ctx context.Context) ([]*User, error) {
	iter := s.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var users []*User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("list users: %w", err)
		}
		u, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Firestore) SetUserActive(ctx context.Context, id string, active bool) error {
	_, err := s.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "is_active", Value: active},
	})
	if err != nil {
		return xerrors.Errorf("set user %s active: %w", id, translate(err))
	}
	return nil
}

func (s *Firestore) DeleteUser(ctx context.Context, id string) error {
	_, err := s.client.Collection(usersCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		return xerrors.Errorf("delete user %s: %w", id, translate(err))
	}
	return nil
}
