// Package discount provides queries for discount codes.
package discount

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

var (
	// ErrCodeNotFound is returned when no discount code matches.
	ErrCodeNotFound = errors.New("discount code not found")
	// ErrCodeExists is returned when creating a code that already exists.
	ErrCodeExists = errors.New("discount code already exists")
)

// List returns every discount code, newest first.
func List(db *gorm.DB) ([]models.DiscountCode, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	codes := []models.DiscountCode{}
	if err := db.Order("created_at DESC").Order("id DESC").Find(&codes).Error; err != nil {
		return nil, err
	}

	return codes, nil
}

// GetByCode returns the discount code, matched case-insensitively.
func GetByCode(db *gorm.DB, code string) (*models.DiscountCode, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var d models.DiscountCode
	if err := db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}

		return nil, err
	}

	return &d, nil
}

// Create inserts the code. Duplicates are reported as ErrCodeExists, both
// from the pre-check and from the unique index.
func Create(db *gorm.DB, d *models.DiscountCode) error {
	if db == nil {
		return controller.ErrDBNil
	}

	d.Code = strings.ToUpper(d.Code)

	_, err := GetByCode(db, d.Code)
	if err == nil {
		return ErrCodeExists
	}

	if !errors.Is(err, ErrCodeNotFound) {
		return err
	}

	if err = db.Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeExists
		}

		return err
	}

	return nil
}

// Delete removes the code with the id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Delete(&models.DiscountCode{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCodeNotFound
	}

	return nil
}
