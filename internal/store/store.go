// Package store is the gorm-backed persistence for conferences and
// registrants. The unique index on participants.email is the authoritative
// duplicate guard; callers may pre-check but must handle ErrDuplicate.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/conference-registration-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate")
	ErrCapacityReached = errors.New("capacity reached")
)

type Order int

const (
	NewestFirst Order = iota
	BySurname
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindConference(ctx context.Context, id string) (models.Conference, error) {
	var conf models.Conference
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&conf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Conference{}, ErrNotFound
	}
	if err != nil {
		return models.Conference{}, fmt.Errorf("find conference: %w", err)
	}
	return conf, nil
}

func (s *Store) ListConferences(ctx context.Context) ([]models.Conference, error) {
	var conferences []models.Conference
	if err := s.db.WithContext(ctx).Order("date ASC").Find(&conferences).Error; err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	return conferences, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Registrant{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func (s *Store) CountRegistrants(ctx context.Context, conferenceID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Registrant{}).Where("conference_id = ?", conferenceID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count registrants: %w", err)
	}
	return count, nil
}

// CreateRegistrant inserts r. When capacity is positive the seat count is
// re-checked in the same transaction; on postgres the conference row is locked
// so concurrent inserts for one conference serialize.
func (s *Store) CreateRegistrant(ctx context.Context, r *models.Registrant, capacity int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if capacity > 0 {
			if tx.Dialector.Name() == "postgres" {
				var conf models.Conference
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", r.ConferenceID).First(&conf).Error; err != nil {
					return fmt.Errorf("lock conference: %w", err)
				}
			}

			var count int64
			if err := tx.Model(&models.Registrant{}).Where("conference_id = ?", r.ConferenceID).Count(&count).Error; err != nil {
				return fmt.Errorf("count registrants: %w", err)
			}
			if count >= int64(capacity) {
				return ErrCapacityReached
			}
		}

		if err := tx.Omit(clause.Associations).Create(r).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("create registrant: %w", err)
		}
		return nil
	})
}

// ListRegistrants returns every registrant joined with its conference.
func (s *Store) ListRegistrants(ctx context.Context, order Order) ([]models.Registrant, error) {
	q := s.db.WithContext(ctx).Preload("Conference")
	switch order {
	case BySurname:
		q = q.Order("nom ASC").Order("prenom ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var registrants []models.Registrant
	if err := q.Find(&registrants).Error; err != nil {
		return nil, fmt.Errorf("list registrants: %w", err)
	}
	return registrants, nil
}

func (s *Store) FindRegistrantByCredential(ctx context.Context, payload string) (models.Registrant, error) {
	var r models.Registrant
	err := s.db.WithContext(ctx).Preload("Conference").Where("credential = ?", payload).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Registrant{}, ErrNotFound
	}
	if err != nil {
		return models.Registrant{}, fmt.Errorf("find registrant: %w", err)
	}
	return r, nil
}

// Ping checks the database connection for health probes.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
