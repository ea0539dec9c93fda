package store

import "context"

// Store is the full document store surface used by the services.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByMSV(ctx context.Context, msv string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	DeleteUser(ctx context.Context, id string) error

	CreateMatch(ctx context.Context, m *Match) error
	CreateMatches(ctx context.Context, ms []*Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	ListMatches(ctx context.Context) ([]*Match, error)
	UpdateMatchInfo(ctx context.Context, id string, info MatchInfo) error
	LockMatch(ctx context.Context, id string) error
	SetMatchScore(ctx context.Context, id string, scoreA, scoreB int) (*Match, error)
	AppendMatchEvent(ctx context.Context, id string, ev Event) error
	DeleteMatch(ctx context.Context, id string) error

	CreatePrediction(ctx context.Context, p *Prediction) error
	ListMatchPredictions(ctx context.Context, matchID string) ([]*Prediction, error)
	ListUserPredictions(ctx context.Context, msv string) ([]*Prediction, error)

	CreateVote(ctx context.Context, v *FavoriteVote) error
	ListVotes(ctx context.Context) ([]*FavoriteVote, error)
}

var (
	_ Store = (*Firestore)(nil)
	_ Store = (*Memory)(nil)
)
