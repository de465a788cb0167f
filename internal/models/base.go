package models

import (
	"expensebook/internal/uuid"

	"gorm.io/gorm"
)

// Base carries the identity column shared by every table.
type Base struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
}

// BeforeCreate hook generates a UUIDv7 for new records that have no ID yet
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
