// Package lesson provides lookups of course lessons used as chat context.
package lesson

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

// ErrLessonNotFound is returned when no lesson matches.
var ErrLessonNotFound = errors.New("lesson not found")

// GetByID returns the lesson with the id.
func GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Lesson, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var l models.Lesson
	if err := db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}

		return nil, err
	}

	return &l, nil
}

// Finder adapts GetByID to a lookup bound to one database.
type Finder struct {
	DB *gorm.DB
}

// FindLesson returns the lesson with the id.
func (f Finder) FindLesson(ctx context.Context, id string) (*models.Lesson, error) {
	return GetByID(ctx, f.DB, id)
}
