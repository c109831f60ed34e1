// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/database"
	"github.com/gdg-garage/conference-registration-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// T is satisfied by *testing.T and *rapid.T.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
}

// NewDB opens a migrated, private in-memory sqlite database closed with t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, closeDB := OpenDB(t)
	t.Cleanup(closeDB)
	return db
}

// OpenDB is NewDB for callers without Cleanup, such as property checks.
// The caller must run the returned close func.
func OpenDB(t T) (*gorm.DB, func()) {
	t.Helper()

	db, err := database.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	return db, func() { _ = sqlDB.Close() }
}

// CreateConference inserts a conference on the given day.
func CreateConference(t T, db *gorm.DB, id, title string, date time.Time, capacity int) models.Conference {
	t.Helper()

	conf := models.Conference{ID: id, Titre: title, Date: date, Capacite: capacity}
	if err := db.Create(&conf).Error; err != nil {
		t.Fatalf("failed to create conference: %v", err)
	}
	return conf
}
