package main

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load demo companies, jobs and candidates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return seed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seed(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named("postgres"))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}

	logger.Info("demo data seeded")
	return nil
}
