// Command seed fills an empty storefront database with the sample menu.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Divyeshhhh/steamy-sips/internal/config"
	"github.com/Divyeshhhh/steamy-sips/internal/seed"
	"github.com/Divyeshhhh/steamy-sips/migrations"
	"github.com/Divyeshhhh/steamy-sips/pkg/database"
	"github.com/Divyeshhhh/steamy-sips/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("storefront-seed", cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Backdated so the sample reviews read as a month of activity.
	start := time.Now().UTC().Add(-30 * 24 * time.Hour)
	_, err = seed.Run(ctx, pool, seed.Menu(), start, log)
	return err
}
