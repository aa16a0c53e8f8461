// Package internship provides queries for internship applications.
package internship

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

// ErrApplicationNotFound is returned when no application matches.
var ErrApplicationNotFound = errors.New("internship application not found")

// Create inserts the application with status pending.
func Create(db *gorm.DB, a *models.InternshipApplication) error {
	if db == nil {
		return controller.ErrDBNil
	}

	a.Status = models.ApplicationPending

	return db.Create(a).Error
}

// GetByID returns the application with the id.
func GetByID(db *gorm.DB, id string) (*models.InternshipApplication, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var a models.InternshipApplication
	if err := db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}

		return nil, err
	}

	return &a, nil
}

// List returns applications newest first, filtered by status when given.
func List(db *gorm.DB, status models.ApplicationStatus) ([]models.InternshipApplication, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	q := db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	apps := []models.InternshipApplication{}
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// UpdateStatus sets the status and returns the updated application.
func UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) (*models.InternshipApplication, error) {
	a, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if err = db.Model(a).Update("status", status).Error; err != nil {
		return nil, err
	}

	a.Status = status

	return a, nil
}

// Delete removes the application.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Where("id = ?", id).Delete(&models.InternshipApplication{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}
