package store

import (
	"context"

	"golang.org/x/xerrors"
)

// CreateVote stores the ballot keyed by MSV; one ballot per user.
func (s *Firestore) CreateVote(ctx context.Context, v *FavoriteVote) error {
	ref := s.client.Collection(votesCollection).Doc(v.UserMSV)
	if _, err := ref.Create(ctx, v); err != nil {
		return xerrors.Errorf("create vote for %s: %w", v.UserMSV, translate(err))
	}
	return nil
}

func (s *Firestore) ListVotes(ctx context.Context) ([]*FavoriteVote, error) {
	docs, err := s.client.Collection(votesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, xerrors.Errorf("list votes: %w", err)
	}

	votes := make([]*FavoriteVote, 0, len(docs))
	for _, doc := range docs {
		var v FavoriteVote
		if err := decode(doc, &v); err != nil {
			return nil, err
		}
		votes = append(votes, &v)
	}
	return votes, nil
}
