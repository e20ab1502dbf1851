package db_models

import "github.com/google/uuid"

// BannedUser blocks rejoin and re-invite for the (user, clique) pair until
// an unban removes it.
type BannedUser struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CliqueID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reason   string    `gorm:"size:100"`
	BanDate  string    `gorm:"size:10;not null"` // YYYY-MM-DD
}
