package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel provides a random uuid primary key filled in on insert.
type UUIDModel struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
}

// BeforeCreate assigns a new uuid if none was set.
func (m *UUIDModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	return nil
}
