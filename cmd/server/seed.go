package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdg-garage/conference-registration-api/internal/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default conferences into an empty database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		return seed(cmd.Context(), cfg.DatabaseURL, logger)
	},
}

func seed(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	db, err := database.Open(databaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	n, err := database.Seed(ctx, db, database.DefaultConferences())
	if err != nil {
		return fmt.Errorf("seeding conferences: %w", err)
	}
	if n == 0 {
		logger.InfoContext(ctx, "conferences already present, nothing seeded")
		return nil
	}
	logger.InfoContext(ctx, "seeded conferences", "count", n)
	return nil
}
