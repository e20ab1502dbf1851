package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletedUserID is the reserved owner id that marker creation links are
// reassigned to when the creating account is removed. It is never a real
// account.
var DeletedUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

const DefaultPicture = "default.jpg"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:100;not null"`
	Picture      string    `gorm:"size:150;default:default.jpg"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Picture == "" {
		u.Picture = DefaultPicture
	}
	return nil
}
