package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process document store with the same contract as
// Firestore. Every read returns copies.
type Memory struct {
	mu          sync.RWMutex
	users       map[string]*User
	matches     map[string]*Match
	predictions map[string]*Prediction
	predOrder   []string
	votes       map[string]*FavoriteVote
	voteOrder   []string
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[string]*User),
		matches:     make(map[string]*Match),
		predictions: make(map[string]*Prediction),
		votes:       make(map[string]*FavoriteVote),
	}
}

func copyUser(u *User) *User {
	c := *u
	return &c
}

func copyMatch(m *Match) *Match {
	c := *m
	c.TeamA.Logo = copyString(m.TeamA.Logo)
	c.TeamB.Logo = copyString(m.TeamB.Logo)
	c.Minute = copyString(m.Minute)
	c.ScoreA = copyInt(m.ScoreA)
	c.ScoreB = copyInt(m.ScoreB)
	c.Events = append([]Event(nil), m.Events...)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func (s *Memory) CreateUser(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.MSV == u.MSV {
			return ErrDuplicate
		}
	}
	u.ID = NewID()
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Memory) GetUser(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Memory) GetUserByMSV(_ context.Context, msv string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.MSV == msv {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// ListUsers returns users in id order.
func (s *Memory) ListUsers(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Memory) SetUserActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (s *Memory) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Memory) CreateMatch(_ context.Context, m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = NewID()
	s.matches[m.ID] = copyMatch(m)
	return nil
}

func (s *Memory) CreateMatches(_ context.Context, ms []*Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range ms {
		m.ID = NewID()
		s.matches[m.ID] = copyMatch(m)
	}
	return nil
}

func (s *Memory) GetMatch(_ context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyMatch(m), nil
}

func (s *Memory) ListMatches(_ context.Context) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, copyMatch(m))
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].StartTime.Equal(matches[j].StartTime) {
			return matches[i].StartTime.Before(matches[j].StartTime)
		}
		return matches[i].ID < matches[j].ID
	})
	return matches, nil
}

func (s *Memory) UpdateMatchInfo(_ context.Context, id string, info MatchInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return ErrNotFound
	}
	if info.Competition != nil {
		m.Competition = *info.Competition
	}
	if info.TeamA != nil {
		m.TeamA.Name = *info.TeamA
	}
	if info.TeamALogo != nil {
		m.TeamA.Logo = copyString(info.TeamALogo)
	}
	if info.TeamAColor != nil {
		m.TeamA.Color = *info.TeamAColor
	}
	if info.TeamB != nil {
		m.TeamB.Name = *info.TeamB
	}
	if info.TeamBLogo != nil {
		m.TeamB.Logo = copyString(info.TeamBLogo)
	}
	if info.TeamBColor != nil {
		m.TeamB.Color = *info.TeamBColor
	}
	if info.Date != nil {
		m.Date = *info.Date
	}
	if info.Kickoff != nil {
		m.Kickoff = *info.Kickoff
	}
	if info.StartTime != nil {
		m.StartTime = *info.StartTime
	}
	if info.Status != nil {
		m.Status = *info.Status
	}
	if info.Minute != nil {
		m.Minute = copyString(info.Minute)
	}
	return nil
}

func (s *Memory) LockMatch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return ErrNotFound
	}
	m.IsLocked = true
	return nil
}

func (s *Memory) SetMatchScore(_ context.Context, id string, scoreA, scoreB int) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.ScoreA, m.ScoreB = &scoreA, &scoreB
	return copyMatch(m), nil
}

func (s *Memory) AppendMatchEvent(_ context.Context, id string, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return ErrNotFound
	}
	m.Events = append(m.Events, ev)
	return nil
}

func (s *Memory) DeleteMatch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return ErrNotFound
	}
	delete(s.matches, id)

	kept := s.predOrder[:0]
	for _, key := range s.predOrder {
		if s.predictions[key].MatchID == id {
			delete(s.predictions, key)
			continue
		}
		kept = append(kept, key)
	}
	s.predOrder = kept
	return nil
}

func (s *Memory) CreatePrediction(_ context.Context, p *Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := predictionKey(p.MatchID, p.UserMSV)
	if _, ok := s.predictions[key]; ok {
		return ErrDuplicate
	}
	c := *p
	s.predictions[key] = &c
	s.predOrder = append(s.predOrder, key)
	return nil
}

func (s *Memory) ListMatchPredictions(_ context.Context, matchID string) ([]*Prediction, error) {
	return s.filterPredictions(func(p *Prediction) bool { return p.MatchID == matchID }), nil
}

func (s *Memory) ListUserPredictions(_ context.Context, msv string) ([]*Prediction, error) {
	return s.filterPredictions(func(p *Prediction) bool { return p.UserMSV == msv }), nil
}

func (s *Memory) filterPredictions(keep func(*Prediction) bool) []*Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preds := []*Prediction{}
	for _, key := range s.predOrder {
		if p := s.predictions[key]; keep(p) {
			c := *p
			preds = append(preds, &c)
		}
	}
	return preds
}

func (s *Memory) CreateVote(_ context.Context, v *FavoriteVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.votes[v.UserMSV]; ok {
		return ErrDuplicate
	}
	c := *v
	c.Teams = append([]string(nil), v.Teams...)
	s.votes[v.UserMSV] = &c
	s.voteOrder = append(s.voteOrder, v.UserMSV)
	return nil
}

func (s *Memory) ListVotes(_ context.Context) ([]*FavoriteVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votes := make([]*FavoriteVote, 0, len(s.votes))
	for _, msv := range s.voteOrder {
		c := *s.votes[msv]
		c.Teams = append([]string(nil), c.Teams...)
		votes = append(votes, &c)
	}
	return votes, nil
}
