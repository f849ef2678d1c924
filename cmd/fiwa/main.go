package main

import (
	"context"
	"os"

	"fiwa/internal/cli"
	"fiwa/internal/config"
	"fiwa/internal/log"
	"fiwa/internal/seed"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	dataDir := cli.ResolveDataDir(logger, cfg)
	logger.Info("starting fiwa", log.FieldMode, cfg.Mode, log.FieldDataDir, dataDir)

	if err := cfg.WriteSnapshot(dataDir); err != nil {
		logger.Error("failed to write config snapshot", log.FieldError, err)
		os.Exit(1)
	}

	result := cli.OpenBackend(ctx, logger, cfg, dataDir)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("backend cleanup failed", log.FieldError, err)
		}
	}()
	be := result.Backend

	if cfg.Mode == config.ModeDev && cfg.SeedUsers > 0 {
		if err := seed.New(be, logger).Run(ctx, cfg.SeedUsers); err != nil {
			logger.Error("seeding failed", log.FieldError, err)
			os.Exit(1)
		}
	}

	if cfg.StartupProbe {
		// Reading the session also expires a stale one left behind by
		// a previous run.
		info, err := be.Sessions().Current(ctx)
		switch {
		case err != nil:
			logger.Error("session probe failed", log.FieldError, err)
		case info == nil:
			logger.Info("no active session")
		default:
			logger.Info("active session",
				log.FieldUserID, info.User.UserID,
				"username", info.User.Username,
				"projects", len(info.Projects))
		}
	}

	users, err := be.Users().Count(ctx)
	if err != nil {
		logger.Error("user count failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("fiwa ready", "users", users)
}
