package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CliqueUser is the membership link. CreatedAt (unix nanos) breaks ties
// between members who joined on the same calendar day: admin promotion picks
// the earliest JoinedDate first, then the earliest insertion.
type CliqueUser struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CliqueID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedDate string    `gorm:"size:10;not null"` // YYYY-MM-DD
	CreatedAt  int64     `gorm:"not null"`
}

func (cu *CliqueUser) BeforeCreate(tx *gorm.DB) error {
	if cu.CreatedAt == 0 {
		cu.CreatedAt = time.Now().UnixNano()
	}
	return nil
}
