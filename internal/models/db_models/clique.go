package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CliqueVisibility = string

const (
	VisibilityPrivate   CliqueVisibility = "Private"
	VisibilityPublic    CliqueVisibility = "Public"
	VisibilityProtected CliqueVisibility = "Protected"
)

func ValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityPublic || v == VisibilityProtected
}

// Clique always has exactly one admin who is also a member; a clique whose
// last member leaves is destroyed rather than left empty.
type Clique struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:200"`
	Visibility  string    `gorm:"size:20;not null"`
	DateCreated string    `gorm:"size:10"` // YYYY-MM-DD
	AdminID     uuid.UUID `gorm:"type:uuid;not null"`
	Icon        string    `gorm:"size:100"`
}

func (c *Clique) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
