package votes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/repos/store"
)

// BallotSize is the number of favorite teams on every ballot.
const BallotSize = 3

type Store interface {
	CreateVote(ctx context.Context, v *store.FavoriteVote) error
	ListVotes(ctx context.Context) ([]*store.FavoriteVote, error)
}

type VotesService struct {
	store Store
	now   func() time.Time
}

func NewVotesService(s Store) *VotesService {
	return &VotesService{
		store: s,
		now:   time.Now,
	}
}

// Submit stores msv's one ballot of exactly BallotSize teams.
func (s *VotesService) Submit(ctx context.Context, msv string, teams []string) error {
	if len(teams) != BallotSize {
		return apperr.Newf(apperr.InvalidInput, "pick exactly %d teams", BallotSize)
	}
	picked := make([]string, 0, len(teams))
	for _, t := range teams {
		t = strings.TrimSpace(t)
		if t == "" {
			return apperr.New(apperr.InvalidInput, "team names must not be empty")
		}
		picked = append(picked, t)
	}

	v := &store.FavoriteVote{
		UserMSV:   msv,
		Teams:     picked,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateVote(ctx, v); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.New(apperr.AlreadyVoted, "you already voted for your favorite teams")
		}
		return xerrors.Errorf("submit vote: %w", err)
	}
	logging.Info().Str("msv", msv).Strs("teams", picked).Msg("favorite teams voted")
	return nil
}

// Results counts how many ballots name each team, most voted first.
func (s *VotesService) Results(ctx context.Context) (*Results, error) {
	ballots, err := s.store.ListVotes(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, b := range ballots {
		for _, team := range b.Teams {
			counts[team]++
		}
	}

	tally := make([]TeamTally, 0, len(counts))
	for team, n := range counts {
		tally = append(tally, TeamTally{Team: team, Votes: n})
	}
	sort.Slice(tally, func(i, j int) bool {
		if tally[i].Votes != tally[j].Votes {
			return tally[i].Votes > tally[j].Votes
		}
		return tally[i].Team < tally[j].Team
	})

	return &Results{Ballots: len(ballots), Teams: tally}, nil
}
