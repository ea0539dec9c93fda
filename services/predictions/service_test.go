package predictions

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/repos/store"
)

func init() {
	logging.Init(logging.Config{Output: io.Discard})
}

var kickoff = time.Date(2025, 12, 9, 8, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*PredictionsService, *store.Memory, *store.Match) {
	t.Helper()
	mem := store.NewMemory()
	match := &store.Match{
		TeamA:     store.Team{Name: "Max FC"},
		TeamB:     store.Team{Name: "F+"},
		Status:    store.StatusUpcoming,
		StartTime: kickoff,
	}
	require.NoError(t, mem.CreateMatch(context.Background(), match))

	svc := NewPredictionsService(mem)
	svc.now = func() time.Time { return kickoff.Add(-time.Hour) }
	return svc, mem, match
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	svc, mem, match := setupService(t)

	p, err := svc.Submit(ctx, "SV001", match.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, kickoff.Add(-time.Hour), p.CreatedAt)

	_, err = svc.Submit(ctx, "SV001", match.ID, 0, 0)
	assert.ErrorIs(t, err, apperr.AlreadyPredicted)

	preds, err := mem.ListMatchPredictions(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, 2, preds[0].ScoreA)
}

func TestSubmitRejects(t *testing.T) {
	ctx := context.Background()
	svc, mem, match := setupService(t)

	_, err := svc.Submit(ctx, "SV001", "nope", 1, 0)
	assert.ErrorIs(t, err, apperr.InvalidInput)

	_, err = svc.Submit(ctx, "SV001", store.NewID(), 1, 0)
	assert.ErrorIs(t, err, apperr.NotFound)

	_, err = svc.Submit(ctx, "SV001", match.ID, -1, 0)
	assert.ErrorIs(t, err, apperr.InvalidInput)

	t.Run("at kickoff", func(t *testing.T) {
		svc.now = func() time.Time { return kickoff }
		_, err := svc.Submit(ctx, "SV002", match.ID, 1, 0)
		assert.ErrorIs(t, err, apperr.Locked)
	})

	t.Run("locked early", func(t *testing.T) {
		svc.now = func() time.Time { return kickoff.Add(-24 * time.Hour) }
		require.NoError(t, mem.LockMatch(ctx, match.ID))
		_, err := svc.Submit(ctx, "SV003", match.ID, 1, 0)
		assert.ErrorIs(t, err, apperr.Locked)
	})
}

func TestLockedWinsOverDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, mem, match := setupService(t)

	_, err := svc.Submit(ctx, "SV001", match.ID, 1, 1)
	require.NoError(t, err)
	require.NoError(t, mem.LockMatch(ctx, match.ID))

	_, err = svc.Submit(ctx, "SV001", match.ID, 1, 1)
	assert.ErrorIs(t, err, apperr.Locked)
}

func TestConcurrentSubmitOneWins(t *testing.T) {
	ctx := context.Background()
	svc, _, match := setupService(t)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(ctx, "SV001", match.ID, i, 0)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperr.AlreadyPredicted)
	}
	assert.Equal(t, 1, succeeded)
}

func pred(msv string, a, b int) *store.Prediction {
	return &store.Prediction{UserMSV: msv, ScoreA: a, ScoreB: b}
}

func TestSummarize(t *testing.T) {
	stats, predictors := Summarize([]*store.Prediction{
		pred("SV001", 2, 1),
		pred("SV002", 2, 1),
		pred("SV003", 1, 1),
	})
	assert.Equal(t, Stats{HomePercent: 66, AwayPercent: 0, DrawPercent: 34, Total: 3}, stats)
	assert.Equal(t, []Predictor{
		{Name: "SV001", Pick: "2-1"},
		{Name: "SV002", Pick: "2-1"},
		{Name: "SV003", Pick: "1-1"},
	}, predictors)

	stats, predictors = Summarize(nil)
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, predictors)
}

func TestSummarizeAlwaysSumsTo100(t *testing.T) {
	for winsA := 0; winsA < 7; winsA++ {
		for winsB := 0; winsB < 7; winsB++ {
			for draws := 0; draws < 7; draws++ {
				var preds []*store.Prediction
				for i := 0; i < winsA; i++ {
					preds = append(preds, pred("A", 1, 0))
				}
				for i := 0; i < winsB; i++ {
					preds = append(preds, pred("B", 0, 1))
				}
				for i := 0; i < draws; i++ {
					preds = append(preds, pred("D", 2, 2))
				}
				if len(preds) == 0 {
					continue
				}
				stats, _ := Summarize(preds)
				assert.Equal(t, 100, stats.HomePercent+stats.AwayPercent+stats.DrawPercent, "%d/%d/%d", winsA, winsB, draws)
			}
		}
	}
}

func TestMatchStatisticsAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc, mem, match := setupService(t)

	_, err := svc.Submit(ctx, "SV001", match.ID, 3, 0)
	require.NoError(t, err)

	stats, err := svc.MatchStatistics(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Stats.HomePercent)

	require.NoError(t, mem.DeleteMatch(ctx, match.ID))
	_, err = svc.MatchStatistics(ctx, match.ID)
	assert.ErrorIs(t, err, apperr.NotFound)
}
