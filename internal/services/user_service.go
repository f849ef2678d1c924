package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fiwa/internal/auth"
	"fiwa/internal/core"
	"fiwa/internal/log"
	"fiwa/internal/storage"
)

// UserService creates, authenticates and reads users.
type UserService struct {
	store    *storage.Store
	sessions *SessionService
	salt     string
	log      *log.Logger
}

// Create validates the required fields, hashes the password with the
// process-wide salt, applies defaults for anything omitted and stores
// the row. A uniqueness violation on email comes back as a duplicate
// error naming the field.
func (s *UserService) Create(ctx context.Context, nu core.NewUser) (int64, error) {
	if err := nu.Validate(); err != nil {
		return 0, err
	}

	hash, err := auth.HashPassword(nu.Password, s.salt)
	if err != nil {
		return 0, err
	}

	rec := storage.UserRecord{
		FirstName:        nu.FirstName,
		LastName:         nu.LastName,
		Username:         nu.Username,
		Email:            nu.Email,
		PasswordHash:     hash,
		Birthday:         nu.Birthday,
		Activated:        true,
		IsSuperuser:      nu.IsSuperuser,
		Scope:            core.DefaultScope,
		MaxProjects:      core.DefaultMaxProjects,
		UniqueIdentifier: uuid.NewString(),
		CreatedAt:        time.Now(),
	}
	if nu.Activated != nil {
		rec.Activated = *nu.Activated
	}
	if nu.Scope != nil {
		rec.Scope = *nu.Scope
	}
	if nu.MaxProjects != nil {
		rec.MaxProjects = *nu.MaxProjects
	}

	userID, err := s.store.InsertUser(ctx, rec)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "user created", log.FieldUserID, userID, "username", rec.Username)
	return userID, nil
}

// Authenticate matches identifier (username or email) plus password
// against activated users. A mismatch is a normal outcome and yields
// nil without error; a match hands over to the session manager so the
// single-session policy holds.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*core.Session, error) {
	hash, err := auth.HashPassword(password, s.salt)
	if err != nil {
		return nil, err
	}

	userID, found, err := s.store.FindUserForLogin(ctx, identifier, hash)
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.DebugContext(ctx, "login rejected", "identifier", identifier)
		return nil, nil
	}
	return s.sessions.Login(ctx, userID)
}

// GetInfo returns the user, or nil when no such user exists.
func (s *UserService) GetInfo(ctx context.Context, userID int64) (*core.User, error) {
	return s.store.GetUser(ctx, userID)
}

// MaxProjects returns the user's project quota, falling back to the
// default when the row is missing.
func (s *UserService) MaxProjects(ctx context.Context, userID int64) (int, error) {
	max, found, err := s.store.UserMaxProjects(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !found {
		return core.DefaultMaxProjects, nil
	}
	return max, nil
}

// AllIDs returns every user id in insertion order.
func (s *UserService) AllIDs(ctx context.Context) ([]int64, error) {
	return s.store.AllUserIDs(ctx)
}

// Count returns the total number of users.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.store.CountUsers(ctx)
}
