package models

// Lesson is the course content an AI chat question may refer to.
type Lesson struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"size:50" json:"type"`
	Duration    int    `json:"duration"` // minutes
}
