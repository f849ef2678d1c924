// Package cli provides common initialization shared by the commands:
// logging, .env loading, config validation, data-directory resolution
// and backend construction.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"fiwa/internal/backend"
	"fiwa/internal/config"
	"fiwa/internal/log"
	"fiwa/internal/platform"
)

// SetupLogger initializes structured logging and sets it as default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// ResolveDataDir picks the data directory (config override or per-OS
// default) and prepares it. Dev mode wipes previous content for a
// clean slate.
func ResolveDataDir(logger *log.Logger, cfg *config.Config) string {
	dir := cfg.DataDir
	if dir == "" {
		var err error
		dir, err = platform.DataDir(cfg.Mode == config.ModeDev)
		if err != nil {
			logger.Error("failed to resolve data directory", log.FieldError, err)
			os.Exit(1)
		}
	}
	if err := platform.Ensure(dir, cfg.Mode == config.ModeDev); err != nil {
		logger.Error("failed to prepare data directory", log.FieldDataDir, dir, log.FieldError, err)
		os.Exit(1)
	}
	return dir
}

// OpenBackend builds the configured backend, exiting the process on
// failure.
func OpenBackend(ctx context.Context, logger *log.Logger, cfg *config.Config, dataDir string) *backend.Result {
	result, err := backend.NewFactory(logger).Create(ctx, backend.Config{
		Type:         backend.Type(cfg.Backend),
		DBPath:       cfg.DBPath(dataDir),
		PasswordSalt: cfg.PasswordSalt,
	})
	if err != nil {
		logger.Error("failed to initialize backend", log.FieldError, err)
		os.Exit(1)
	}
	return result
}
