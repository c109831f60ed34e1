package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conference struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Date      time.Time `json:"date" gorm:"index"`
	Titre     string    `json:"titre" gorm:"not null"`
	Capacite  int       `json:"capacite"` // 0 means unlimited
	CreatedAt time.Time `json:"-"`
}

func (c *Conference) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DateKey is the ISO date portion of the conference date, used for filtering.
func (c Conference) DateKey() string {
	return c.Date.UTC().Format(time.DateOnly)
}
