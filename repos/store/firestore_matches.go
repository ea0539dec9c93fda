package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
)

func docToMatch(doc *firestore.DocumentSnapshot) (*Match, error) {
	var m Match
	if err := decode(doc, &m); err != nil {
		return nil, err
	}
	m.ID = doc.Ref.ID
	return &m, nil
}

func (s *Firestore) matches() *firestore.CollectionRef {
	return s.client.Collection(matchesCollection)
}

// CreateMatch assigns m.ID and stores m.
func (s *Firestore) CreateMatch(ctx context.Context, m *Match) error {
	id := NewID()
	if _, err := s.matches().Doc(id).Create(ctx, m); err != nil {
		return xerrors.Errorf("create match: %w", translate(err))
	}
	m.ID = id
	return nil
}

// CreateMatches stores all of ms or none of them.
func (s *Firestore) CreateMatches(ctx context.Context, ms []*Match) error {
	ids := make([]string, len(ms))
	for i := range ms {
		ids[i] = NewID()
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i, m := range ms {
			if err := tx.Create(s.matches().Doc(ids[i]), m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return xerrors.Errorf("import %d matches: %w", len(ms), translate(err))
	}
	for i, m := range ms {
		m.ID = ids[i]
	}
	return nil
}

func (s *Firestore) GetMatch(ctx context.Context, id string) (*Match, error) {
	doc, err := s.matches().Doc(id).Get(ctx)
	if err != nil {
		return nil, xerrors.Errorf("get match %s: %w", id, translate(err))
	}
	return docToMatch(doc)
}

// ListMatches returns every match ordered by kickoff.
func (s *Firestore) ListMatches(ctx context.Context) ([]*Match, error) {
	iter := s.matches().OrderBy("start_time", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var matches []*Match
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("list matches: %w", err)
		}
		m, err := docToMatch(doc)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func createMatchInfoUpdates(info MatchInfo) []firestore.Update {
	var updates []firestore.Update

	if info.Competition != nil {
		updates = append(updates, firestore.Update{Path: "competition", Value: *info.Competition})
	}
	if info.TeamA != nil {
		updates = append(updates, firestore.Update{Path: "team_a.name", Value: *info.TeamA})
	}
	if info.TeamALogo != nil {
		updates = append(updates, firestore.Update{Path: "team_a.logo", Value: *info.TeamALogo})
	}
	if info.TeamAColor != nil {
		updates = append(updates, firestore.Update{Path: "team_a.color", Value: *info.TeamAColor})
	}
	if info.TeamB != nil {
		updates = append(updates, firestore.Update{Path: "team_b.name", Value: *info.TeamB})
	}
	if info.TeamBLogo != nil {
		updates = append(updates, firestore.Update{Path: "team_b.logo", Value: *info.TeamBLogo})
	}
	if info.TeamBColor != nil {
		updates = append(updates, firestore.Update{Path: "team_b.color", Value: *info.TeamBColor})
	}
	if info.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: *info.Date})
	}
	if info.Kickoff != nil {
		updates = append(updates, firestore.Update{Path: "kickoff", Value: *info.Kickoff})
	}
	if info.StartTime != nil {
		updates = append(updates, firestore.Update{Path: "start_time", Value: *info.StartTime})
	}
	if info.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *info.Status})
	}
	if info.Minute != nil {
		updates = append(updates, firestore.Update{Path: "minute", Value: *info.Minute})
	}
	return updates
}

func (s *Firestore) UpdateMatchInfo(ctx context.Context, id string, info MatchInfo) error {
	updates := createMatchInfoUpdates(info)
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.matches().Doc(id).Update(ctx, updates); err != nil {
		return xerrors.Errorf("update match %s: %w", id, translate(err))
	}
	return nil
}

func (s *Firestore) LockMatch(ctx context.Context, id string) error {
	_, err := s.matches().Doc(id).Update(ctx, []firestore.Update{
		{Path: "is_locked", Value: true},
	})
	if err != nil {
		return xerrors.Errorf("lock match %s: %w", id, translate(err))
	}
	return nil
}

// SetMatchScore sets both scores and returns the match as stored afterwards.
func (s *Firestore) SetMatchScore(ctx context.Context, id string, scoreA, scoreB int) (*Match, error) {
	ref := s.matches().Doc(id)

	var updated *Match
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		m, err := docToMatch(doc)
		if err != nil {
			return err
		}
		m.ScoreA, m.ScoreB = &scoreA, &scoreB
		updated = m

		return tx.Update(ref, []firestore.Update{
			{Path: "score_a", Value: scoreA},
			{Path: "score_b", Value: scoreB},
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("set score of match %s: %w", id, translate(err))
	}
	return updated, nil
}

// AppendMatchEvent adds ev at the end of the match's event log. Identical
// events are kept, so this reads and rewrites the array instead of using
// ArrayUnion.
func (s *Firestore) AppendMatchEvent(ctx context.Context, id string, ev Event) error {
	ref := s.matches().Doc(id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		m, err := docToMatch(doc)
		if err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "events", Value: append(m.Events, ev)},
		})
	})
	if err != nil {
		return xerrors.Errorf("append event to match %s: %w", id, translate(err))
	}
	return nil
}

// DeleteMatch removes the match and every prediction made on it.
func (s *Firestore) DeleteMatch(ctx context.Context, id string) error {
	ref := s.matches().Doc(id)
	predictions := s.client.Collection(predictionsCollection).Where("match_id", "==", id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		docs, err := tx.Documents(predictions).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}
		return tx.Delete(ref)
	})
	if err != nil {
		return xerrors.Errorf("delete match %s: %w", id, translate(err))
	}
	return nil
}
