package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/cache"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/logger"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/seed"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the store content with the bundled portfolio fixtures",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, argv []string) error {
	if err := utils.LoadEnvFile(args.envFile); err != nil {
		return err
	}
	cfg, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*database.MONGO_TIMEOUT)
	defer cancel()

	data, err := seed.Load(time.Now().UTC(), uuid.NewString)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close(context.Background())

	log.Info("clearing existing data and seeding", "driver", cfg.StoreDriver)
	if err := store.Seed(ctx, data); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	log.Info("data seeding completed",
		"case_studies", len(data.CaseStudies),
		"frameworks", len(data.Frameworks),
		"metrics", len(data.Metrics),
	)

	return invalidateStats(ctx, cfg, log)
}

// invalidateStats drops the cached dashboard payload so the next read sees
// the new data.
func invalidateStats(ctx context.Context, cfg utils.Config, log *logger.Logger) error {
	statsCache, err := cache.New(cfg.RedisURI, cfg.StatsCacheTTL)
	if err != nil {
		return err
	}
	defer statsCache.Close()

	if !statsCache.Enabled() {
		return nil
	}
	if err := statsCache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate dashboard stats cache: %w", err)
	}
	log.Info("dashboard stats cache invalidated")
	return nil
}
