package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fiwa/internal/core"
)

// UserRecord is the insert shape for a user row. Defaults are applied
// by the caller; the gateway stores what it is given.
type UserRecord struct {
	FirstName        string
	LastName         string
	Username         string
	Email            string
	PasswordHash     string
	Birthday         string // empty stores NULL
	Activated        bool
	IsSuperuser      bool
	Scope            string
	MaxProjects      int
	UniqueIdentifier string
	CreatedAt        time.Time
}

// InsertUser stores a new user row and returns its generated id.
// Uniqueness violations come back as DuplicateError with a field hint.
func (s *Store) InsertUser(ctx context.Context, rec UserRecord) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `
			INSERT INTO users
			(first_name, last_name, username, birthday, email, password_hash,
			 activated, is_superuser, scope, max_projects, unique_identifier, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.FirstName, rec.LastName, rec.Username, nullString(rec.Birthday),
			rec.Email, rec.PasswordHash, boolInt(rec.Activated), boolInt(rec.IsSuperuser),
			rec.Scope, rec.MaxProjects, rec.UniqueIdentifier, formatTime(rec.CreatedAt),
		)
		if err != nil {
			return mapConstraint(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, s.wrap("create user", err)
}

// GetUser returns the user row for id, or nil when it does not exist.
func (s *Store) GetUser(ctx context.Context, userID int64) (*core.User, error) {
	var u core.User
	var birthday sql.NullString
	var activated, superuser int
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT user_id, first_name, last_name, username, email, birthday,
			       activated, is_superuser, scope, max_projects, unique_identifier
			FROM users WHERE user_id = ?`, userID)
		return row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
			&birthday, &activated, &superuser, &u.Scope, &u.MaxProjects, &u.UniqueIdentifier)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrap("get user", err)
	}
	u.Birthday = birthday.String
	u.Activated = activated != 0
	u.IsSuperuser = superuser != 0
	return &u, nil
}

// FindUserForLogin matches identifier against username or email for an
// activated user with the given password hash. found is false on no
// match; that is a normal outcome, not an error.
func (s *Store) FindUserForLogin(ctx context.Context, identifier, passwordHash string) (userID int64, found bool, err error) {
	err = s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT user_id FROM users
			WHERE (username = ? OR email = ?) AND password_hash = ? AND activated = 1`,
			identifier, identifier, passwordHash)
		return row.Scan(&userID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, s.wrap("user login lookup", err)
	}
	return userID, true, nil
}

// UserExists reports whether a user row exists for id.
func (s *Store) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = ?)`, userID)
		return row.Scan(&exists)
	})
	return exists, s.wrap("check user", err)
}

// UserMaxProjects returns the user's project quota. found is false when
// the row does not exist.
func (s *Store) UserMaxProjects(ctx context.Context, userID int64) (max int, found bool, err error) {
	err = s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT max_projects FROM users WHERE user_id = ?`, userID)
		return row.Scan(&max)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, s.wrap("get max projects", err)
	}
	return max, true, nil
}

// AllUserIDs returns every user id in insertion order.
func (s *Store) AllUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT user_id FROM users ORDER BY user_id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	return ids, s.wrap("list user ids", err)
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	})
	return count, s.wrap("count users", err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
