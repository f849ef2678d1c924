package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiwa/internal/core"
)

func TestReplaceSessionKeepsSingleRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID, err := s.InsertUser(ctx, testUser(1))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		err := s.ReplaceSession(ctx, core.Session{
			UserID:       userID,
			SessionUUID:  "token-last",
			SessionStart: time.Now(),
			SessionType:  core.SessionTypeLocal,
		})
		require.NoError(t, err)
	}

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "repeated logins must never accumulate rows")
	assert.Equal(t, userID, sessions[0].UserID)
	assert.Equal(t, "token-last", sessions[0].SessionUUID)
	assert.Equal(t, core.SessionTypeLocal, sessions[0].SessionType)
}

func TestReplaceSessionPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	firstID, err := s.InsertUser(ctx, testUser(1))
	require.NoError(t, err)
	secondID, err := s.InsertUser(ctx, testUser(2))
	require.NoError(t, err)

	require.NoError(t, s.ReplaceSession(ctx, core.Session{
		UserID: firstID, SessionUUID: "token-1", SessionStart: time.Now(),
	}))
	require.NoError(t, s.ReplaceSession(ctx, core.Session{
		UserID: secondID, SessionUUID: "token-2", SessionStart: time.Now(),
	}))

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2, "the delete targets only the logging-in user")
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID, err := s.InsertUser(ctx, testUser(1))
	require.NoError(t, err)
	require.NoError(t, s.ReplaceSession(ctx, core.Session{
		UserID: userID, SessionUUID: "token", SessionStart: time.Now(),
	}))

	require.NoError(t, s.DeleteSession(ctx, "token"))
	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// Deleting an unknown token is a no-op, not an error.
	assert.NoError(t, s.DeleteSession(ctx, "token"))
}

func TestSessionStartRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID, err := s.InsertUser(ctx, testUser(1))
	require.NoError(t, err)

	start := time.Now().Add(-10 * time.Minute)
	require.NoError(t, s.ReplaceSession(ctx, core.Session{
		UserID: userID, SessionUUID: "token", SessionStart: start,
	}))

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].SessionStart.Equal(start))
}
