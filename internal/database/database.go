package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for a DATABASE_URL. Postgres URLs go to the
// pgx-backed driver, anything else is treated as a sqlite path.
func Dialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

// Open connects and migrates. The returned handle owns the connection pool and
// is meant to be shared across the whole process.
func Open(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if db.Dialector.Name() == "sqlite" {
		// sqlite allows one writer; a single connection queues concurrent
		// callers instead of failing them with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Conference{}, &models.Registrant{}); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// DefaultConferences are the sessions created by the seed command.
func DefaultConferences() []models.Conference {
	return []models.Conference{
		{
			Date:     time.Date(2025, time.April, 14, 0, 0, 0, 0, time.UTC),
			Titre:    "Conférence Carrefour Étudiant - Avril 2025 (Session 1)",
			Capacite: 200,
		},
		{
			Date:     time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC),
			Titre:    "Conférence Carrefour Étudiant - Avril 2025 (Session 2)",
			Capacite: 200,
		},
		{
			Date:     time.Date(2025, time.April, 17, 0, 0, 0, 0, time.UTC),
			Titre:    "Conférence Carrefour Étudiant - Avril 2025 (Session 3)",
			Capacite: 200,
		},
	}
}

// Seed inserts conferences when the table is empty and reports how many rows
// were created. Seeding an already populated database is a no-op.
func Seed(ctx context.Context, db *gorm.DB, conferences []models.Conference) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Conference{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count conferences: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	if len(conferences) == 0 {
		return 0, nil
	}

	if err := db.WithContext(ctx).Create(&conferences).Error; err != nil {
		return 0, fmt.Errorf("seed conferences: %w", err)
	}
	return len(conferences), nil
}
