package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fiwa/internal/core"
	"fiwa/internal/log"
	"fiwa/internal/storage"
)

// SessionService enforces the single-active-session policy and the
// 30-minute expiry.
type SessionService struct {
	store    *storage.Store
	users    *UserService
	projects *ProjectService
	log      *log.Logger
}

// Login replaces any prior session for the user with a fresh one. The
// prior delete happens even when no session exists, which keeps the
// at-most-one invariant enforced at the storage level.
func (s *SessionService) Login(ctx context.Context, userID int64) (*core.Session, error) {
	sess := core.Session{
		UserID:       userID,
		SessionUUID:  uuid.NewString(),
		SessionStart: time.Now().UTC(),
		SessionType:  core.SessionTypeLocal,
	}
	if err := s.store.ReplaceSession(ctx, sess); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "session started", log.FieldUserID, userID, log.FieldSessionUUID, sess.SessionUUID)
	return &sess, nil
}

// Logout deletes the session matching the token. A failed delete is
// reported as false rather than an error.
func (s *SessionService) Logout(ctx context.Context, sessionUUID string) bool {
	if err := s.store.DeleteSession(ctx, sessionUUID); err != nil {
		s.log.WarnContext(ctx, "logout failed", log.FieldSessionUUID, sessionUUID, log.FieldError, err)
		return false
	}
	s.log.InfoContext(ctx, "session ended", log.FieldSessionUUID, sessionUUID)
	return true
}

// Current reads the single system-wide session, if any. Finding more
// than one row means the invariant is broken somewhere; that is logged
// and treated as "no session" instead of guessing which row wins. An
// expired session is deleted as a side effect of the read. On success
// the result composes the session with user and project context.
func (s *SessionService) Current(ctx context.Context) (*core.SessionInfo, error) {
	sessions, err := s.store.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	if len(sessions) > 1 {
		s.log.WarnContext(ctx, "multiple sessions found, expected at most one", log.FieldCount, len(sessions))
		return nil, nil
	}

	sess := sessions[0]
	if time.Since(sess.SessionStart) > core.SessionTTL {
		s.log.InfoContext(ctx, "session expired", log.FieldSessionUUID, sess.SessionUUID)
		s.Logout(ctx, sess.SessionUUID)
		return nil, nil
	}

	user, err := s.users.GetInfo(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.WarnContext(ctx, "session references a missing user", log.FieldUserID, sess.UserID)
		return nil, nil
	}
	projects, err := s.projects.InfoForUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	return &core.SessionInfo{
		Session:    sess,
		IsLoggedIn: true,
		User:       *user,
		Projects:   projects,
	}, nil
}
