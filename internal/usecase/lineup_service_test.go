package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/courtside/internal/domain/lineup"
)

func TestLineupService_GenerateTwiceReturnsConflict(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	params := LineupParams{Auto: true, Formation: "1-2-1", PlayerIDs: []string{"gk", "d1", "m1", "m2", "f1", "bench"}}
	first, err := env.lineups.Generate(t.Context(), s.ID, params)
	require.NoError(t, err)
	assert.True(t, first.AutoGenerated)
	require.Len(t, first.Players, 6)
	assert.Equal(t, lineup.PositionGoalkeeper, first.Players[0].Position)
	assert.Equal(t, lineup.PositionSubstitute, first.Players[5].Position)

	_, err = env.lineups.Generate(t.Context(), s.ID, params)
	conflict, ok := ConflictFrom(err)
	require.True(t, ok, "expected conflict, got %v", err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, ConflictResourceLineup, conflict.Resource)
	assert.Equal(t, first.ID, conflict.ExistingID)

	stored, err := env.lineups.Get(t.Context(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID, "conflict must not overwrite")
}

func TestLineupService_ReplaceLeavesExactlyTheNewLineup(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	first, err := env.lineups.Generate(t.Context(), s.ID, LineupParams{Auto: true, PlayerIDs: []string{"a", "b", "c", "d", "e"}})
	require.NoError(t, err)

	p2 := LineupParams{
		Formation: "manual",
		Players: []lineup.Player{
			{PlayerID: "x", Position: lineup.PositionGoalkeeper, X: 50, Y: 5},
			{PlayerID: "y", Position: lineup.PositionForward, X: 50, Y: 90, Comment: "press high"},
		},
	}
	replaced, err := env.lineups.Replace(t.Context(), s.ID, p2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, replaced.ID)
	assert.False(t, replaced.AutoGenerated)

	stored, err := env.lineups.Get(t.Context(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, replaced.ID, stored.ID)
	assert.Equal(t, []string{"x", "y"}, stored.PlayerIDs(), "content must be p2, never a merge")
	assert.Equal(t, 2, stored.Players[1].Order)
	assert.Equal(t, "press high", stored.Players[1].Comment)
}

func TestLineupService_ReplaceWithoutExistingCreates(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	created, err := env.lineups.Replace(t.Context(), s.ID, LineupParams{Auto: true, Formation: "2-2", PlayerIDs: []string{"a", "b", "c", "d", "e"}})
	require.NoError(t, err)
	assert.Equal(t, "2-2", created.Formation)
	assert.Equal(t, lineup.PositionForward, created.Players[4].Position)
}

func TestLineupService_ConcurrentGenerateKeepsOneLineup(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.lineups.Generate(t.Context(), s.ID, LineupParams{Auto: true, PlayerIDs: []string{"a", "b"}})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 9, conflicts)
}

func TestLineupService_Validation(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	tests := []struct {
		name   string
		params LineupParams
	}{
		{name: "no players", params: LineupParams{Auto: true}},
		{name: "bad formation", params: LineupParams{Auto: true, Formation: "4-x", PlayerIDs: []string{"a"}}},
		{name: "duplicate auto player", params: LineupParams{Auto: true, PlayerIDs: []string{"a", "a"}}},
		{name: "duplicate manual player", params: LineupParams{Players: []lineup.Player{{PlayerID: "a"}, {PlayerID: "a"}}}},
		{name: "coordinates off pitch", params: LineupParams{Players: []lineup.Player{{PlayerID: "a", X: 120}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.lineups.Generate(t.Context(), s.ID, tc.params)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := env.lineups.Generate(t.Context(), "missing", LineupParams{Auto: true, PlayerIDs: []string{"a"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLineupService_Delete(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	assert.ErrorIs(t, env.lineups.Delete(t.Context(), s.ID), ErrNotFound)

	_, err := env.lineups.Generate(t.Context(), s.ID, LineupParams{Auto: true, PlayerIDs: []string{"a"}})
	require.NoError(t, err)
	require.NoError(t, env.lineups.Delete(t.Context(), s.ID))

	_, err = env.lineups.Get(t.Context(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.lineups.Generate(t.Context(), s.ID, LineupParams{Auto: true, PlayerIDs: []string{"a"}})
	assert.NoError(t, err, "generate works again after delete")
}
