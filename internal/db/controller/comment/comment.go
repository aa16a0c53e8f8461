// Package comment provides queries for blog comments.
package comment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

// ErrCommentNotFound is returned when no comment matches.
var ErrCommentNotFound = errors.New("comment not found")

// ListApproved returns the approved comments of a post, oldest first.
func ListApproved(db *gorm.DB, postID uint64) ([]models.Comment, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	comments := []models.Comment{}

	err := db.Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// GetByID returns the comment with the id.
func GetByID(db *gorm.DB, id string) (*models.Comment, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var c models.Comment
	if err := db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}

		return nil, err
	}

	return &c, nil
}

// Create inserts the comment.
func Create(db *gorm.DB, c *models.Comment) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(c).Error
}

// Delete removes the comment and its direct replies.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Comment{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrCommentNotFound
		}

		return tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error
	})
}
