// Command fiwa-seed fills the configured database with fake users,
// projects, labels and items through the regular create operations.
package main

import (
	"context"
	"flag"
	"os"

	"fiwa/internal/cli"
	"fiwa/internal/log"
	"fiwa/internal/seed"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	users := flag.Int("users", cfg.SeedUsers, "number of users to seed")
	flag.Parse()

	ctx := context.Background()
	dataDir := cli.ResolveDataDir(logger, cfg)
	result := cli.OpenBackend(ctx, logger, cfg, dataDir)
	defer func() { _ = result.Cleanup() }()

	if err := seed.New(result.Backend, logger).Run(ctx, *users); err != nil {
		logger.Error("seeding failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("seed complete", "users", *users, log.FieldDataDir, dataDir)
}
