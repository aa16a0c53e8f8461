// Package blog provides queries for localized blog posts.
package blog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

// ErrPostNotFound is returned when no published post matches.
var ErrPostNotFound = errors.New("blog post not found")

// ListPublished returns the published posts in lang, newest first.
func ListPublished(db *gorm.DB, lang string, limit int) ([]models.BlogPost, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	q := db.Where("published = ? AND lang = ?", true, lang).Order("published_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var posts []models.BlogPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPublishedBySlug returns the published post with the slug.
func GetPublishedBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var post models.BlogPost
	if err := db.Where("slug = ? AND published = ?", slug, true).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, err
	}

	return &post, nil
}

// Exists reports whether a post with the id exists.
func Exists(db *gorm.DB, id uint64) (bool, error) {
	if db == nil {
		return false, controller.ErrDBNil
	}

	var count int64
	if err := db.Model(&models.BlogPost{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
