package predictions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/xerrors"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/pkg/metrics"
	"github.com/webbongda/matchday/repos/store"
)

// Store is the part of the document store predictions need.
type Store interface {
	GetMatch(ctx context.Context, id string) (*store.Match, error)
	CreatePrediction(ctx context.Context, p *store.Prediction) error
	ListMatchPredictions(ctx context.Context, matchID string) ([]*store.Prediction, error)
	ListUserPredictions(ctx context.Context, msv string) ([]*store.Prediction, error)
}

type PredictionsService struct {
	store Store
	now   func() time.Time
}

func NewPredictionsService(s Store) *PredictionsService {
	return &PredictionsService{
		store: s,
		now:   time.Now,
	}
}

// Submit records msv's one prediction for a match. It is rejected once the
// match is locked or has kicked off, and whenever msv already predicted it.
func (s *PredictionsService) Submit(ctx context.Context, msv, matchID string, scoreA, scoreB int) (*store.Prediction, error) {
	if !store.ValidID(matchID) {
		return nil, apperr.New(apperr.InvalidInput, "invalid match id")
	}
	if scoreA < 0 || scoreB < 0 {
		return nil, apperr.New(apperr.InvalidInput, "scores must not be negative")
	}

	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "match not found")
		}
		return nil, err
	}

	now := s.now().UTC()
	if match.IsLocked || !now.Before(match.StartTime) {
		metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultLocked).Inc()
		return nil, apperr.New(apperr.Locked, "predictions for this match are closed")
	}

	p := &store.Prediction{
		UserMSV:   msv,
		MatchID:   matchID,
		ScoreA:    scoreA,
		ScoreB:    scoreB,
		CreatedAt: now,
	}
	if err := s.store.CreatePrediction(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultDuplicate).Inc()
			return nil, apperr.New(apperr.AlreadyPredicted, "you already predicted this match")
		}
		return nil, xerrors.Errorf("submit prediction: %w", err)
	}

	metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultAccepted).Inc()
	logging.Info().Str("msv", msv).Str("match_id", matchID).Msg("prediction submitted")
	return p, nil
}

// MatchStatistics summarizes every prediction made on a match.
func (s *PredictionsService) MatchStatistics(ctx context.Context, matchID string) (*MatchStatistics, error) {
	if !store.ValidID(matchID) {
		return nil, apperr.New(apperr.InvalidInput, "invalid match id")
	}
	if _, err := s.store.GetMatch(ctx, matchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "match not found")
		}
		return nil, err
	}

	preds, err := s.store.ListMatchPredictions(ctx, matchID)
	if err != nil {
		return nil, err
	}
	stats, predictors := Summarize(preds)
	return &MatchStatistics{Stats: stats, Predictors: predictors}, nil
}

// Summarize computes outcome percentages and the pick list. Draws take the
// remainder, so the three percentages add up to 100 unless there are no
// predictions at all.
func Summarize(preds []*store.Prediction) (Stats, []Predictor) {
	var winsA, winsB int
	predictors := make([]Predictor, 0, len(preds))
	for _, p := range preds {
		switch {
		case p.ScoreA > p.ScoreB:
			winsA++
		case p.ScoreB > p.ScoreA:
			winsB++
		}
		predictors = append(predictors, Predictor{
			Name: p.UserMSV,
			Pick: fmt.Sprintf("%d-%d", p.ScoreA, p.ScoreB),
		})
	}

	stats := Stats{Total: len(preds)}
	if stats.Total > 0 {
		stats.HomePercent = winsA * 100 / stats.Total
		stats.AwayPercent = winsB * 100 / stats.Total
		stats.DrawPercent = 100 - stats.HomePercent - stats.AwayPercent
	}
	return stats, predictors
}

// UserPredictions lists msv's predictions, oldest first.
func (s *PredictionsService) UserPredictions(ctx context.Context, msv string) ([]*store.Prediction, error) {
	return s.store.ListUserPredictions(ctx, msv)
}
