package matches

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xorcare/pointer"
	"golang.org/x/xerrors"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	timehelper "github.com/webbongda/matchday/pkg/timeHelper"
	"github.com/webbongda/matchday/repos/store"
	"github.com/webbongda/matchday/services/predictions"
)

// Store is the part of the document store matches need.
type Store interface {
	CreateMatch(ctx context.Context, m *store.Match) error
	CreateMatches(ctx context.Context, ms []*store.Match) error
	GetMatch(ctx context.Context, id string) (*store.Match, error)
	ListMatches(ctx context.Context) ([]*store.Match, error)
	UpdateMatchInfo(ctx context.Context, id string, info store.MatchInfo) error
	LockMatch(ctx context.Context, id string) error
	SetMatchScore(ctx context.Context, id string, scoreA, scoreB int) (*store.Match, error)
	AppendMatchEvent(ctx context.Context, id string, ev store.Event) error
	DeleteMatch(ctx context.Context, id string) error
	ListMatchPredictions(ctx context.Context, matchID string) ([]*store.Prediction, error)
}

// Broadcaster pushes score changes to live viewers.
type Broadcaster interface {
	BroadcastScore(matchID, teamA, teamB string, scoreA, scoreB int)
}

type MatchesService struct {
	store Store
	live  Broadcaster
	loc   *time.Location
}

// NewMatchesService reads kickoff times as wall clock times in loc.
func NewMatchesService(s Store, live Broadcaster, loc *time.Location) *MatchesService {
	if loc == nil {
		loc = time.UTC
	}
	return &MatchesService{
		store: s,
		live:  live,
		loc:   loc,
	}
}

func checkID(id string) error {
	if !store.ValidID(id) {
		return apperr.New(apperr.InvalidInput, "invalid match id")
	}
	return nil
}

func matchErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(apperr.NotFound, "match not found")
	}
	return err
}

func valueOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

func (s *MatchesService) startTime(date, kickoff string) (time.Time, error) {
	start, err := timehelper.StartTime(date, kickoff, s.loc)
	if err != nil {
		return time.Time{}, apperr.Newf(apperr.InvalidInput, "invalid date %q or kickoff %q", date, kickoff)
	}
	return start, nil
}

func (s *MatchesService) newMatch(req CreateMatchRequest) (*store.Match, error) {
	start, err := s.startTime(req.Date, req.Kickoff)
	if err != nil {
		return nil, err
	}
	return &store.Match{
		Competition: valueOr(req.Competition, defaultCompetition),
		TeamA: store.Team{
			Name:  req.TeamA,
			Logo:  req.TeamALogo,
			Color: valueOr(req.TeamAColor, defaultColorA),
		},
		TeamB: store.Team{
			Name:  req.TeamB,
			Logo:  req.TeamBLogo,
			Color: valueOr(req.TeamBColor, defaultColorB),
		},
		Status:    valueOr(req.Status, store.StatusUpcoming),
		Minute:    req.Minute,
		Date:      req.Date,
		Kickoff:   req.Kickoff,
		StartTime: start,
		Events:    []store.Event{},
	}, nil
}

// Create stores a new, unlocked match without scores.
func (s *MatchesService) Create(ctx context.Context, req CreateMatchRequest) (*store.Match, error) {
	m, err := s.newMatch(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateMatch(ctx, m); err != nil {
		return nil, xerrors.Errorf("create match: %w", err)
	}
	logging.Info().Str("match_id", m.ID).Str("team_a", m.TeamA.Name).Str("team_b", m.TeamB.Name).Msg("match created")
	return m, nil
}

// Import creates all fixtures or none of them.
func (s *MatchesService) Import(ctx context.Context, reqs []CreateMatchRequest) ([]*store.Match, error) {
	ms := make([]*store.Match, 0, len(reqs))
	for i, req := range reqs {
		m, err := s.newMatch(req)
		if err != nil {
			return nil, apperr.Newf(apperr.InvalidInput, "fixture %d: %s", i+1, err.Error())
		}
		ms = append(ms, m)
	}
	if err := s.store.CreateMatches(ctx, ms); err != nil {
		return nil, xerrors.Errorf("import fixtures: %w", err)
	}
	logging.Info().Int("count", len(ms)).Msg("fixtures imported")
	return ms, nil
}

func (s *MatchesService) List(ctx context.Context) ([]*store.Match, error) {
	return s.store.ListMatches(ctx)
}

// Detail loads a match with its prediction statistics.
func (s *MatchesService) Detail(ctx context.Context, id string) (*MatchDetail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return nil, matchErr(err)
	}
	preds, err := s.store.ListMatchPredictions(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, predictors := predictions.Summarize(preds)
	return &MatchDetail{Match: m, Stats: stats, Predictors: predictors}, nil
}

// UpdateInfo applies a partial update and reports whether anything was
// changed. A new date or kickoff moves the start time with it.
func (s *MatchesService) UpdateInfo(ctx context.Context, id string, req UpdateInfoRequest) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}

	info := store.MatchInfo{
		Competition: req.Competition,
		TeamA:       req.TeamA,
		TeamALogo:   req.TeamALogo,
		TeamAColor:  req.TeamAColor,
		TeamB:       req.TeamB,
		TeamBLogo:   req.TeamBLogo,
		TeamBColor:  req.TeamBColor,
		Date:        req.Date,
		Kickoff:     req.Kickoff,
		Status:      req.Status,
		Minute:      req.Minute,
	}
	if info.Empty() {
		return false, nil
	}

	if info.Date != nil || info.Kickoff != nil {
		current, err := s.store.GetMatch(ctx, id)
		if err != nil {
			return false, matchErr(err)
		}
		date, kickoff := current.Date, current.Kickoff
		if info.Date != nil {
			date = *info.Date
		}
		if info.Kickoff != nil {
			kickoff = *info.Kickoff
		}
		start, err := s.startTime(date, kickoff)
		if err != nil {
			return false, err
		}
		info.StartTime = pointer.Time(start)
	}

	if err := s.store.UpdateMatchInfo(ctx, id, info); err != nil {
		return false, matchErr(err)
	}
	return true, nil
}

// Lock closes predictions on a match ahead of kickoff.
func (s *MatchesService) Lock(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.store.LockMatch(ctx, id); err != nil {
		return matchErr(err)
	}
	logging.Info().Str("match_id", id).Msg("match locked")
	return nil
}

// UpdateScore sets the score and announces it to live viewers.
func (s *MatchesService) UpdateScore(ctx context.Context, id string, scoreA, scoreB int) (*store.Match, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if scoreA < 0 || scoreB < 0 {
		return nil, apperr.New(apperr.InvalidInput, "scores must not be negative")
	}

	m, err := s.store.SetMatchScore(ctx, id, scoreA, scoreB)
	if err != nil {
		return nil, matchErr(err)
	}
	if s.live != nil {
		s.live.BroadcastScore(m.ID, m.TeamA.Name, m.TeamB.Name, scoreA, scoreB)
	}
	return m, nil
}

// AddEvent appends to the match's event log. Type defaults to a goal.
func (s *MatchesService) AddEvent(ctx context.Context, id string, req EventRequest) error {
	if err := checkID(id); err != nil {
		return err
	}

	ev := store.Event{
		Minute:   req.Minute,
		Player:   req.Player,
		Type:     valueOr(&req.Type, store.EventGoal),
		TeamSide: strings.ToLower(req.TeamSide),
	}
	switch ev.Type {
	case store.EventGoal, store.EventCard, store.EventSub:
	default:
		return apperr.Newf(apperr.InvalidInput, "unknown event type %q", ev.Type)
	}
	if ev.TeamSide != store.SideA && ev.TeamSide != store.SideB {
		return apperr.Newf(apperr.InvalidInput, "team_side must be %q or %q", store.SideA, store.SideB)
	}

	if err := s.store.AppendMatchEvent(ctx, id, ev); err != nil {
		return matchErr(err)
	}
	return nil
}

// Delete removes the match together with its predictions.
func (s *MatchesService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.store.DeleteMatch(ctx, id); err != nil {
		return matchErr(err)
	}
	logging.Info().Str("match_id", id).Msg("match deleted")
	return nil
}
