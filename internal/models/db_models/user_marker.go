package db_models

import "github.com/google/uuid"

// UserMarker records which user created a marker and in which clique. The
// marker belongs to exactly one clique through this link. When the creating
// account is deleted the link survives with UserID set to DeletedUserID.
type UserMarker struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	MarkerID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CliqueID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreationDate string    `gorm:"size:10;not null"` // YYYY-MM-DD
}
