package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a 1-5 star rating with optional commentary. Route logic keeps at
// most one review per (marker, user) pair; there is no hard unique
// constraint, matching the source schema.
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stars        int       `gorm:"not null"`
	Commentary   string    `gorm:"size:500"`
	MarkerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreationDate string    `gorm:"size:10;not null"` // YYYY-MM-DD
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
