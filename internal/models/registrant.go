package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Registrant struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Nom          string     `json:"nom" gorm:"not null"`
	Prenom       string     `json:"prenom" gorm:"not null"`
	Telephone    string     `json:"telephone" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	ConferenceID string     `json:"conferenceId" gorm:"index;not null;size:36"`
	Conference   Conference `json:"conference" gorm:"foreignKey:ConferenceID;constraint:OnDelete:RESTRICT"`
	Motivation   string     `json:"motivation,omitempty"`
	Credential   string     `json:"credential"`
	QRCode       string     `json:"qrCode"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"index"`
}

func (Registrant) TableName() string {
	return "participants"
}

func (r *Registrant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
