package backend

import (
	"context"
	"fmt"

	"fiwa/internal/log"
	"fiwa/internal/services"
	"fiwa/internal/storage"
)

// Factory builds backends from configuration.
type Factory struct {
	log *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{log: logger.WithComponent(log.ComponentBackend)}
}

// Create builds the backend named by config. For SQLite this creates
// the store, applies the schema on first run and wires the services.
func (f *Factory) Create(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLite(ctx, cfg)
	case APIBackend:
		f.log.InfoContext(ctx, "initialized api backend scaffold", "base_url", cfg.BaseURL)
		return &Result{Backend: newAPIBackend(cfg.BaseURL), Cleanup: noCleanup}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *Factory) createSQLite(ctx context.Context, cfg Config) (*Result, error) {
	store := storage.New(cfg.DBPath, f.log)
	created, err := store.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	svcs := services.New(store, services.Config{PasswordSalt: cfg.PasswordSalt}, f.log)
	f.log.InfoContext(ctx, "initialized sqlite backend",
		log.FieldDBPath, cfg.DBPath, "schema_created", created)

	// Connections are opened per call, so there is nothing to close.
	return &Result{Backend: &sqliteBackend{svcs: svcs}, Cleanup: noCleanup}, nil
}

func noCleanup() error { return nil }

// sqliteBackend exposes the wired services as a Backend.
type sqliteBackend struct {
	svcs *services.Services
}

func (b *sqliteBackend) Users() UserDirectory      { return b.svcs.Users }
func (b *sqliteBackend) Sessions() SessionManager  { return b.svcs.Sessions }
func (b *sqliteBackend) Projects() ProjectRegistry { return b.svcs.Projects }
func (b *sqliteBackend) Labels() LabelRegistry     { return b.svcs.Labels }
func (b *sqliteBackend) Items() ItemLedger         { return b.svcs.Items }
