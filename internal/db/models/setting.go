package models

import "time"

// Setting is a named JSON value, such as the ai_chat feature switch. Value
// is left to the dialect's binary type (longblob, bytea, blob).
type Setting struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
