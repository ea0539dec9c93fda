package store

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
)

// CreatePrediction stores p under a key derived from (match, user), so a
// second prediction for the same pair fails with ErrDuplicate even when
// both requests race.
func (s *Firestore) CreatePrediction(ctx context.Context, p *Prediction) error {
	ref := s.client.Collection(predictionsCollection).Doc(predictionKey(p.MatchID, p.UserMSV))
	if _, err := ref.Create(ctx, p); err != nil {
		return xerrors.Errorf("create prediction %s/%s: %w", p.MatchID, p.UserMSV, translate(err))
	}
	return nil
}

func (s *Firestore) ListMatchPredictions(ctx context.Context, matchID string) ([]*Prediction, error) {
	q := s.client.Collection(predictionsCollection).Where("match_id", "==", matchID)
	preds, err := s.queryPredictions(ctx, q)
	if err != nil {
		return nil, xerrors.Errorf("list predictions of match %s: %w", matchID, err)
	}
	return preds, nil
}

// ListUserPredictions returns the user's predictions, oldest first.
func (s *Firestore) ListUserPredictions(ctx context.Context, msv string) ([]*Prediction, error) {
	q := s.client.Collection(predictionsCollection).Where("user_msv", "==", msv)
	preds, err := s.queryPredictions(ctx, q)
	if err != nil {
		return nil, xerrors.Errorf("list predictions of user %s: %w", msv, err)
	}
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].CreatedAt.Before(preds[j].CreatedAt)
	})
	return preds, nil
}

func (s *Firestore) queryPredictions(ctx context.Context, q firestore.Query) ([]*Prediction, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	preds := make([]*Prediction, 0, len(docs))
	for _, doc := range docs {
		var p Prediction
		if err := decode(doc, &p); err != nil {
			return nil, err
		}
		preds = append(preds, &p)
	}
	return preds, nil
}
