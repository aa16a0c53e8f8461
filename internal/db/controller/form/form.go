// Package form provides queries for form configurations and submissions.
package form

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

// ErrFormNotFound is returned when no active form config matches.
var ErrFormNotFound = errors.New("form config not found")

// GetActiveConfig returns the active form config with the id.
func GetActiveConfig(db *gorm.DB, id uint64) (*models.FormConfig, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var fc models.FormConfig
	if err := db.Where("id = ? AND active = ?", id, true).First(&fc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}

		return nil, err
	}

	return &fc, nil
}

// CreateConfig inserts a form config.
func CreateConfig(db *gorm.DB, fc *models.FormConfig) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(fc).Error
}

// CreateSubmission inserts a submission.
func CreateSubmission(db *gorm.DB, s *models.FormSubmission) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(s).Error
}

// MarkEmailSent records that the notification for a submission went out.
func MarkEmailSent(db *gorm.DB, submissionID string) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Model(&models.FormSubmission{}).
		Where("id = ?", submissionID).
		Update("email_sent", true).Error
}
