package matches

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/repos/store"
)

func init() {
	logging.Init(logging.Config{Output: io.Discard})
}

type scoreCall struct {
	MatchID, TeamA, TeamB string
	ScoreA, ScoreB        int
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []scoreCall
}

func (f *fakeBroadcaster) BroadcastScore(matchID, teamA, teamB string, scoreA, scoreB int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, scoreCall{matchID, teamA, teamB, scoreA, scoreB})
}

func setupService(t *testing.T) (*MatchesService, *store.Memory, *fakeBroadcaster) {
	t.Helper()
	mem := store.NewMemory()
	live := &fakeBroadcaster{}
	return NewMatchesService(mem, live, time.UTC), mem, live
}

func createRequest(a, b, date, kickoff string) CreateMatchRequest {
	return CreateMatchRequest{TeamA: a, TeamB: b, Date: date, Kickoff: kickoff}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := setupService(t)

	m, err := svc.Create(context.Background(), createRequest("FC Thanh Triều", "Melbourne FPI", "2025-12-09", "08:00"))
	require.NoError(t, err)

	assert.True(t, store.ValidID(m.ID))
	assert.Equal(t, "Friendly", m.Competition)
	assert.Equal(t, "#5bed9f", m.TeamA.Color)
	assert.Equal(t, "#e85c5c", m.TeamB.Color)
	assert.Equal(t, store.StatusUpcoming, m.Status)
	assert.False(t, m.IsLocked)
	assert.Nil(t, m.ScoreA)
	assert.Nil(t, m.ScoreB)
	assert.Equal(t, time.Date(2025, 12, 9, 8, 0, 0, 0, time.UTC), m.StartTime)
}

func TestCreateUsesTimezone(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	svc := NewMatchesService(store.NewMemory(), nil, loc)

	m, err := svc.Create(context.Background(), createRequest("A", "B", "2025-12-09", "08:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 9, 1, 0, 0, 0, time.UTC), m.StartTime)
}

func TestCreateRejectsBadSchedule(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Create(context.Background(), createRequest("A", "B", "09/12/2025", "08:00"))
	assert.ErrorIs(t, err, apperr.InvalidInput)

	_, err = svc.Create(context.Background(), createRequest("A", "B", "2025-12-09", "8h"))
	assert.ErrorIs(t, err, apperr.InvalidInput)
}

func TestImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := setupService(t)

	_, err := svc.Import(ctx, []CreateMatchRequest{
		createRequest("A", "B", "2025-12-09", "08:00"),
		createRequest("C", "D", "not-a-date", "09:30"),
	})
	assert.ErrorIs(t, err, apperr.InvalidInput)
	all, err := mem.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	ms, err := svc.Import(ctx, []CreateMatchRequest{
		createRequest("late", "B", "2025-12-10", "08:00"),
		createRequest("early", "D", "2025-12-09", "09:30"),
	})
	require.NoError(t, err)
	assert.Len(t, ms, 2)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "early", listed[0].TeamA.Name)
}

func TestUpdateInfoRecomputesStartTime(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := setupService(t)
	m, err := svc.Create(ctx, createRequest("A", "B", "2025-12-09", "08:00"))
	require.NoError(t, err)

	changed, err := svc.UpdateInfo(ctx, m.ID, UpdateInfoRequest{Kickoff: pointer.String("11:00"), Status: pointer.String(store.StatusLive)})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := mem.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-09", got.Date)
	assert.Equal(t, "11:00", got.Kickoff)
	assert.Equal(t, time.Date(2025, 12, 9, 11, 0, 0, 0, time.UTC), got.StartTime)
	assert.Equal(t, store.StatusLive, got.Status)
	assert.Equal(t, "A", got.TeamA.Name)

	changed, err = svc.UpdateInfo(ctx, m.ID, UpdateInfoRequest{})
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = svc.UpdateInfo(ctx, m.ID, UpdateInfoRequest{Date: pointer.String("tomorrow")})
	assert.ErrorIs(t, err, apperr.InvalidInput)

	_, err = svc.UpdateInfo(ctx, store.NewID(), UpdateInfoRequest{TeamA: pointer.String("X")})
	assert.ErrorIs(t, err, apperr.NotFound)

	_, err = svc.UpdateInfo(ctx, "bad", UpdateInfoRequest{TeamA: pointer.String("X")})
	assert.ErrorIs(t, err, apperr.InvalidInput)
}

func TestUpdateScoreBroadcasts(t *testing.T) {
	ctx := context.Background()
	svc, _, live := setupService(t)
	m, err := svc.Create(ctx, createRequest("Max FC", "Trẻ MEL", "2025-12-09", "11:00"))
	require.NoError(t, err)

	updated, err := svc.UpdateScore(ctx, m.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, *updated.ScoreA)
	assert.Equal(t, []scoreCall{{m.ID, "Max FC", "Trẻ MEL", 2, 1}}, live.calls)

	_, err = svc.UpdateScore(ctx, store.NewID(), 1, 0)
	assert.ErrorIs(t, err, apperr.NotFound)
	_, err = svc.UpdateScore(ctx, m.ID, -1, 0)
	assert.ErrorIs(t, err, apperr.InvalidInput)
	assert.Len(t, live.calls, 1)
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	m, err := svc.Create(ctx, createRequest("A", "B", "2025-12-09", "08:00"))
	require.NoError(t, err)

	require.NoError(t, svc.AddEvent(ctx, m.ID, EventRequest{Minute: "12'", Player: "Son", TeamSide: "a"}))
	require.NoError(t, svc.AddEvent(ctx, m.ID, EventRequest{Minute: "45+1'", Player: "Hai", Type: store.EventCard, TeamSide: "B"}))

	err = svc.AddEvent(ctx, m.ID, EventRequest{Minute: "50'", Player: "X", Type: "penalty", TeamSide: "a"})
	assert.ErrorIs(t, err, apperr.InvalidInput)
	err = svc.AddEvent(ctx, m.ID, EventRequest{Minute: "50'", Player: "X", TeamSide: "home"})
	assert.ErrorIs(t, err, apperr.InvalidInput)
	err = svc.AddEvent(ctx, store.NewID(), EventRequest{Minute: "50'", Player: "X", TeamSide: "a"})
	assert.ErrorIs(t, err, apperr.NotFound)

	detail, err := svc.Detail(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []store.Event{
		{Minute: "12'", Player: "Son", Type: store.EventGoal, TeamSide: store.SideA},
		{Minute: "45+1'", Player: "Hai", Type: store.EventCard, TeamSide: store.SideB},
	}, detail.Match.Events)
}

func TestDetailIncludesStatistics(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := setupService(t)
	m, err := svc.Create(ctx, createRequest("A", "B", "2025-12-09", "08:00"))
	require.NoError(t, err)

	for _, p := range []store.Prediction{
		{UserMSV: "SV001", ScoreA: 2, ScoreB: 1},
		{UserMSV: "SV002", ScoreA: 2, ScoreB: 1},
		{UserMSV: "SV003", ScoreA: 1, ScoreB: 1},
	} {
		p.MatchID = m.ID
		require.NoError(t, mem.CreatePrediction(ctx, &p))
	}

	detail, err := svc.Detail(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 66, detail.Stats.HomePercent)
	assert.Equal(t, 0, detail.Stats.AwayPercent)
	assert.Equal(t, 34, detail.Stats.DrawPercent)
	assert.Len(t, detail.Predictors, 3)
}

func TestLockAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := setupService(t)
	m, err := svc.Create(ctx, createRequest("A", "B", "2025-12-09", "08:00"))
	require.NoError(t, err)
	require.NoError(t, mem.CreatePrediction(ctx, &store.Prediction{UserMSV: "SV001", MatchID: m.ID}))

	require.NoError(t, svc.Lock(ctx, m.ID))
	got, err := mem.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.IsLocked)
	assert.ErrorIs(t, svc.Lock(ctx, store.NewID()), apperr.NotFound)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.ErrorIs(t, svc.Delete(ctx, m.ID), apperr.NotFound)
	_, err = svc.Detail(ctx, m.ID)
	assert.ErrorIs(t, err, apperr.NotFound)

	preds, err := mem.ListMatchPredictions(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, preds)
}
