package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Marker carries a denormalized review aggregate. TotalReviews always equals
// the live count of reviews referencing it and AverageReview their mean
// rounded to 2 decimals; a marker with zero reviews is deleted, never kept.
// Only the lifecycle service writes these two fields.
type Marker struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat           float64   `gorm:"not null"`
	Long          float64   `gorm:"not null"`
	Description   string    `gorm:"size:255"`
	TotalReviews  int       `gorm:"default:0"`
	AverageReview float64   `gorm:"default:0"`
}

func (m *Marker) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
