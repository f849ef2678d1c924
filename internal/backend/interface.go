// Package backend selects the persistence backend behind the domain
// operations: the embedded SQLite store, or the remote-API scaffold.
package backend

import (
	"context"

	"fiwa/internal/core"
)

// UserDirectory creates, authenticates and reads users.
type UserDirectory interface {
	Create(ctx context.Context, nu core.NewUser) (int64, error)
	Authenticate(ctx context.Context, identifier, password string) (*core.Session, error)
	GetInfo(ctx context.Context, userID int64) (*core.User, error)
	MaxProjects(ctx context.Context, userID int64) (int, error)
	AllIDs(ctx context.Context) ([]int64, error)
	Count(ctx context.Context) (int64, error)
}

// SessionManager owns the single-active-session lifecycle.
type SessionManager interface {
	Login(ctx context.Context, userID int64) (*core.Session, error)
	Logout(ctx context.Context, sessionUUID string) bool
	Current(ctx context.Context) (*core.SessionInfo, error)
}

// ProjectRegistry manages projects and memberships.
type ProjectRegistry interface {
	Create(ctx context.Context, np core.NewProject, ownerID int64) (int64, error)
	Update(ctx context.Context, projectID int64, patch core.ProjectPatch) error
	AddMember(ctx context.Context, projectID, userID int64, permModel string, primary bool) error
	InfoForUser(ctx context.Context, userID int64) ([]core.ProjectInfo, error)
}

// LabelRegistry manages project-scoped labels.
type LabelRegistry interface {
	Create(ctx context.Context, nl core.NewLabel, projectID int64) (int64, error)
	Update(ctx context.Context, labelID int64, patch core.LabelPatch) error
	Delete(ctx context.Context, labelID int64, hard bool) error
	Get(ctx context.Context, labelID int64) (*core.Label, error)
	List(ctx context.Context, projectID int64) ([]core.Label, error)
}

// ItemLedger persists transactions.
type ItemLedger interface {
	Create(ctx context.Context, ni core.NewItem) (*core.Item, error)
	ListForProject(ctx context.Context, projectID int64) ([]core.Item, error)
}

// Backend is the full set of domain operations the UI layer calls.
type Backend interface {
	Users() UserDirectory
	Sessions() SessionManager
	Projects() ProjectRegistry
	Labels() LabelRegistry
	Items() ItemLedger
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the backend instance and its cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Type selects a backend implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	APIBackend    Type = "api"
)

// IsValid reports whether the type is a known backend.
func (t Type) IsValid() bool {
	return t == SQLiteBackend || t == APIBackend
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	DBPath       string
	PasswordSalt string

	// API specific
	BaseURL string
}
