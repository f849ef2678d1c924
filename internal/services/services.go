// Package services implements the domain operations over the storage
// gateway: user directory, session manager, project registry, label
// registry and the item ledger. Services validate input, apply
// defaults and enforce quotas; the gateway owns rows and constraints.
package services

import (
	"fiwa/internal/log"
	"fiwa/internal/storage"
)

// Config carries the process-wide service settings.
type Config struct {
	PasswordSalt string
}

// Services bundles the domain services over one store.
type Services struct {
	Users    *UserService
	Sessions *SessionService
	Projects *ProjectService
	Labels   *LabelService
	Items    *ItemService
}

// New wires the services together. Authentication delegates to the
// session manager and the session manager composes user and project
// reads, so the user service gets its session handle after both exist.
func New(store *storage.Store, cfg Config, logger *log.Logger) *Services {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	users := &UserService{
		store: store,
		salt:  cfg.PasswordSalt,
		log:   logger.WithComponent(log.ComponentUsers),
	}
	projects := &ProjectService{
		store: store,
		users: users,
		log:   logger.WithComponent(log.ComponentProjects),
	}
	sessions := &SessionService{
		store:    store,
		users:    users,
		projects: projects,
		log:      logger.WithComponent(log.ComponentSessions),
	}
	users.sessions = sessions

	return &Services{
		Users:    users,
		Sessions: sessions,
		Projects: projects,
		Labels: &LabelService{
			store: store,
			log:   logger.WithComponent(log.ComponentLabels),
		},
		Items: &ItemService{
			store: store,
			log:   logger.WithComponent(log.ComponentItems),
		},
	}
}
