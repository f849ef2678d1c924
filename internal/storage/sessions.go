package storage

import (
	"context"
	"database/sql"

	"fiwa/internal/core"
)

// ReplaceSession deletes any session rows for the user, then inserts the
// given one. Both statements run in one transaction so a user can never
// end up with two sessions or none mid-operation. The delete is
// idempotent: it is issued even when no prior session exists.
func (s *Store) ReplaceSession(ctx context.Context, sess core.Session) error {
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sessions WHERE user_id = ?`, sess.UserID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (user_id, session_start, session_uuid, session_type)
			VALUES (?, ?, ?, ?)`,
			sess.UserID, formatTime(sess.SessionStart), sess.SessionUUID, sess.SessionType)
		return err
	})
	return s.wrap("replace session", err)
}

// DeleteSession removes the session row matching the token, if any.
func (s *Store) DeleteSession(ctx context.Context, sessionUUID string) error {
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`DELETE FROM sessions WHERE session_uuid = ?`, sessionUUID)
		return err
	})
	return s.wrap("delete session", err)
}

// Sessions returns every session row. The single-user design expects at
// most one; callers decide what a violation of that means.
func (s *Store) Sessions(ctx context.Context) ([]core.Session, error) {
	var sessions []core.Session
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT user_id, session_start, session_uuid, session_type
			FROM sessions ORDER BY session_id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var sess core.Session
			var start string
			if err := rows.Scan(&sess.UserID, &start, &sess.SessionUUID, &sess.SessionType); err != nil {
				return err
			}
			if sess.SessionStart, err = parseTime(start); err != nil {
				return err
			}
			sessions = append(sessions, sess)
		}
		return rows.Err()
	})
	return sessions, s.wrap("list sessions", err)
}
