package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/courtside/internal/domain/session"
)

func createExternalSession(t *testing.T, env *testEnv) session.Session {
	t.Helper()
	created, err := env.sessions.CreateSingle(t.Context(), CreateSessionInput{
		SessionDetails: SessionDetails{
			ExternalLocation: "City Park",
			StartTime:        mustTime(t, "10:00"),
			EndTime:          mustTime(t, "11:00"),
		},
		Date: mustDate(t, "2024-03-06"),
	})
	require.NoError(t, err)
	return created
}

func TestAttendanceTokenService_TTL(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{tokens: []string{"AB12CD"}})
	s := createExternalSession(t, env)

	token, err := env.tokens.Activate(t.Context(), ActivateTokenInput{SessionID: s.ID, TTLMinutes: 1, TokenLength: 6})
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", token.Value)
	assert.True(t, token.ExpiresAt.Equal(env.clock.Now().Add(time.Minute)))

	valid, err := env.tokens.IsValid(t.Context(), s.ID)
	require.NoError(t, err)
	assert.True(t, valid)

	env.clock.Advance(59 * time.Second)
	valid, err = env.tokens.IsValid(t.Context(), s.ID)
	require.NoError(t, err)
	assert.True(t, valid)

	env.clock.Advance(time.Second)
	valid, err = env.tokens.IsValid(t.Context(), s.ID)
	require.NoError(t, err)
	assert.False(t, valid, "token must expire exactly at now >= expiresAt")

	status, err := env.tokens.Status(t.Context(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, session.TokenStateExpired, status.State)
}

func TestAttendanceTokenService_DeactivateIgnoresRemainingTTL(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	_, err := env.tokens.Activate(t.Context(), ActivateTokenInput{SessionID: s.ID, TTLMinutes: 60, TokenLength: 6})
	require.NoError(t, err)
	require.NoError(t, env.tokens.Deactivate(t.Context(), s.ID))

	valid, err := env.tokens.IsValid(t.Context(), s.ID)
	require.NoError(t, err)
	assert.False(t, valid)

	status, err := env.tokens.Status(t.Context(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, session.TokenStateDeactivated, status.State)
}

func TestAttendanceTokenService_ReactivationSupersedes(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{tokens: []string{"OLD111", "NEW222"}})
	s := createExternalSession(t, env)

	_, err := env.tokens.Activate(t.Context(), ActivateTokenInput{SessionID: s.ID, TTLMinutes: 30, TokenLength: 6})
	require.NoError(t, err)
	_, err = env.tokens.Activate(t.Context(), ActivateTokenInput{SessionID: s.ID, TTLMinutes: 30, TokenLength: 6})
	require.NoError(t, err)

	_, err = env.attendance.Submit(t.Context(), SubmitAttendanceInput{SessionID: s.ID, Token: "OLD111", PlayerID: "p1"})
	assert.ErrorIs(t, err, ErrTokenMismatch)

	_, err = env.attendance.Submit(t.Context(), SubmitAttendanceInput{SessionID: s.ID, Token: "NEW222", PlayerID: "p1"})
	assert.NoError(t, err)
}

func TestAttendanceTokenService_ConcurrentActivationsLeaveOneToken(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{tokens: []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}})
	s := createExternalSession(t, env)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issued []string
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := env.tokens.Activate(t.Context(), ActivateTokenInput{SessionID: s.ID, TTLMinutes: 5, TokenLength: 2})
			if err != nil {
				t.Errorf("activate: %v", err)
				return
			}
			mu.Lock()
			issued = append(issued, token.Value)
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, issued, 8)

	accepted := 0
	for _, value := range issued {
		_, err := env.attendance.Submit(t.Context(), SubmitAttendanceInput{SessionID: s.ID, Token: value, PlayerID: "p-" + value})
		if err == nil {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted, "only the last activation may stay current")
}

func TestAttendanceTokenService_Validation(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	tests := []struct {
		name  string
		input ActivateTokenInput
	}{
		{name: "zero ttl", input: ActivateTokenInput{SessionID: s.ID, TTLMinutes: 0, TokenLength: 6}},
		{name: "negative length", input: ActivateTokenInput{SessionID: s.ID, TTLMinutes: 5, TokenLength: -1}},
		{name: "lat without lng", input: ActivateTokenInput{SessionID: s.ID, TTLMinutes: 5, TokenLength: 6, Lat: floatPtr(1)}},
		{name: "anchor out of range", input: ActivateTokenInput{SessionID: s.ID, TTLMinutes: 5, TokenLength: 6, Lat: floatPtr(95), Lng: floatPtr(0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.tokens.Activate(t.Context(), tc.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := env.tokens.Activate(t.Context(), ActivateTokenInput{SessionID: "missing", TTLMinutes: 5, TokenLength: 6})
	assert.True(t, errors.Is(err, ErrNotFound))

	status, err := env.tokens.Status(t.Context(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, session.TokenStateInactive, status.State)
}

func TestAttendanceTokenService_AnchorOnlyStoredWhenLocationRequired(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	s := createExternalSession(t, env)

	token, err := env.tokens.Activate(t.Context(), ActivateTokenInput{
		SessionID: s.ID, TTLMinutes: 5, TokenLength: 6,
		Lat: floatPtr(40.4), Lng: floatPtr(-3.7),
	})
	require.NoError(t, err)
	assert.False(t, token.HasAnchor())

	token, err = env.tokens.Activate(t.Context(), ActivateTokenInput{
		SessionID: s.ID, TTLMinutes: 5, TokenLength: 6, RequiresLocation: true,
		Lat: floatPtr(40.4), Lng: floatPtr(-3.7),
	})
	require.NoError(t, err)
	require.True(t, token.HasAnchor())
	assert.InDelta(t, 40.4, *token.Lat, 1e-9)
}
