package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date        string    `gorm:"size:10;not null"` // YYYY-MM-DD
	Time        string    `gorm:"size:10;not null"`
	Description string    `gorm:"size:500"`
	MarkerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CliqueID    uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
