package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
)

func TestNewIDIsValid(t *testing.T) {
	id := NewID()
	assert.True(t, ValidID(id), id)
	assert.NotEqual(t, id, NewID())

	assert.False(t, ValidID(""))
	assert.False(t, ValidID("not-an-id"))
	assert.False(t, ValidID("65a1f0c2e4b0a1b2c3d4e5f6"))
}

func TestMemoryUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	u := &User{MSV: "SV001", FullName: "Nguyen Van A", Role: RoleUser, IsActive: true}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.True(t, ValidID(u.ID))

	err := s.CreateUser(ctx, &User{MSV: "SV001"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := s.GetUserByMSV(ctx, "SV001")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, s.SetUserActive(ctx, u.ID, false))
	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	assert.ErrorIs(t, s.DeleteUser(ctx, u.ID), ErrNotFound)
	_, err = s.GetUserByMSV(ctx, "SV001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	m := &Match{TeamA: Team{Name: "Max FC"}, TeamB: Team{Name: "Galacticos"}, ScoreA: pointer.Int(1)}
	require.NoError(t, s.CreateMatch(ctx, m))

	got, err := s.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	*got.ScoreA = 7
	got.Events = append(got.Events, Event{Player: "ghost"})

	again, err := s.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *again.ScoreA)
	assert.Empty(t, again.Events)
}

func TestMemoryListMatchesSortedByStartTime(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	base := time.Date(2025, 12, 9, 8, 0, 0, 0, time.UTC)

	late := &Match{TeamA: Team{Name: "late"}, StartTime: base.Add(3 * time.Hour)}
	early := &Match{TeamA: Team{Name: "early"}, StartTime: base}
	require.NoError(t, s.CreateMatches(ctx, []*Match{late, early}))

	matches, err := s.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "early", matches[0].TeamA.Name)
	assert.Equal(t, "late", matches[1].TeamA.Name)
}

func TestMemoryMatchUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	m := &Match{TeamA: Team{Name: "F+"}, TeamB: Team{Name: "Max FC"}, Status: StatusUpcoming}
	require.NoError(t, s.CreateMatch(ctx, m))

	require.NoError(t, s.UpdateMatchInfo(ctx, m.ID, MatchInfo{
		TeamB:  pointer.String("All star btec"),
		Status: pointer.String(StatusLive),
		Minute: pointer.String("12'"),
	}))
	require.NoError(t, s.LockMatch(ctx, m.ID))
	require.NoError(t, s.AppendMatchEvent(ctx, m.ID, Event{Minute: "12'", Player: "A", Type: EventGoal, TeamSide: SideA}))
	require.NoError(t, s.AppendMatchEvent(ctx, m.ID, Event{Minute: "12'", Player: "A", Type: EventGoal, TeamSide: SideA}))

	updated, err := s.SetMatchScore(ctx, m.ID, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "F+", updated.TeamA.Name)
	assert.Equal(t, "All star btec", updated.TeamB.Name)
	assert.Equal(t, StatusLive, updated.Status)
	assert.Equal(t, "12'", *updated.Minute)
	assert.True(t, updated.IsLocked)
	assert.Len(t, updated.Events, 2)
	assert.Equal(t, 2, *updated.ScoreA)
	assert.Equal(t, 0, *updated.ScoreB)

	missing := NewID()
	assert.ErrorIs(t, s.UpdateMatchInfo(ctx, missing, MatchInfo{Status: pointer.String("ft")}), ErrNotFound)
	assert.ErrorIs(t, s.LockMatch(ctx, missing), ErrNotFound)
	assert.ErrorIs(t, s.AppendMatchEvent(ctx, missing, Event{}), ErrNotFound)
	_, err = s.SetMatchScore(ctx, missing, 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteMatchCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	keep := &Match{TeamA: Team{Name: "keep"}}
	drop := &Match{TeamA: Team{Name: "drop"}}
	require.NoError(t, s.CreateMatches(ctx, []*Match{keep, drop}))

	for _, msv := range []string{"SV001", "SV002"} {
		require.NoError(t, s.CreatePrediction(ctx, &Prediction{UserMSV: msv, MatchID: drop.ID}))
	}
	require.NoError(t, s.CreatePrediction(ctx, &Prediction{UserMSV: "SV001", MatchID: keep.ID}))

	require.NoError(t, s.DeleteMatch(ctx, drop.ID))
	assert.ErrorIs(t, s.DeleteMatch(ctx, drop.ID), ErrNotFound)

	dropped, err := s.ListMatchPredictions(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	kept, err := s.ListUserPredictions(ctx, "SV001")
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, keep.ID, kept[0].MatchID)
}

func TestMemoryPredictionUniqueUnderRace(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	matchID := NewID()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.CreatePrediction(ctx, &Prediction{UserMSV: "SV001", MatchID: matchID, ScoreA: i})
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicate)
	}
	assert.Equal(t, 1, succeeded)
}

func TestMemoryVotes(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	teams := []string{"Max FC", "F+", "Dừa Fc"}
	require.NoError(t, s.CreateVote(ctx, &FavoriteVote{UserMSV: "SV001", Teams: teams}))
	assert.ErrorIs(t, s.CreateVote(ctx, &FavoriteVote{UserMSV: "SV001", Teams: teams}), ErrDuplicate)

	teams[0] = "mutated"
	votes, err := s.ListVotes(ctx)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "Max FC", votes[0].Teams[0])
}
