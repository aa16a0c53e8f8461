package models

import "time"

// FieldType is the input kind of a form field.
type FieldType string

// Known field types.
const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldPhone    FieldType = "tel"
	FieldFile     FieldType = "file"
)

// FormField describes one input of a configured form.
type FormField struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	Options   []string  `json:"options,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	MaxLength int       `json:"maxLength,omitempty"`
}

// FormConfig is an admin defined form.
type FormConfig struct {
	ID               uint64      `gorm:"primaryKey" json:"id"`
	Name             string      `gorm:"size:200;not null" json:"name"`
	Slug             string      `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Active           bool        `json:"active"`
	Fields           []FormField `gorm:"serializer:json;type:text" json:"fields"`
	NotifyEmail      string      `gorm:"size:255" json:"notifyEmail"`
	SendConfirmation bool        `json:"sendConfirmation"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// StoredFile is the metadata of an uploaded file kept with a submission.
type StoredFile struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	Key         string `json:"key"`
	URL         string `json:"url,omitempty"`
}

// FormSubmission is one submitted form.
type FormSubmission struct {
	UUIDModel
	FormConfigID   uint64         `gorm:"index;not null" json:"formConfigId"`
	Data           map[string]any `gorm:"serializer:json;type:text" json:"data"`
	Files          []StoredFile   `gorm:"serializer:json;type:text" json:"files"`
	SubmitterEmail string         `gorm:"size:255" json:"submitterEmail"`
	IP             string         `gorm:"size:64" json:"-"`
	EmailSent      bool           `json:"emailSent"`
	CreatedAt      time.Time      `json:"createdAt"`
}
