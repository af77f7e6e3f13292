package main

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the job catalog cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop every cached catalog listing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return flushCache(cmd.Context())
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(cacheCmd)
}

func flushCache(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	r := cache.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.TTL, logger)
	defer func() { _ = r.Close() }()

	if err := r.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if err := r.DeleteByPattern(ctx, repository.CatalogCachePattern); err != nil {
		return fmt.Errorf("flushing catalog cache: %w", err)
	}

	logger.Info("catalog cache flushed", zap.String("pattern", repository.CatalogCachePattern))
	return nil
}
