package models

import "time"

// BlogPost is a localized blog article.
type BlogPost struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Lang        string    `gorm:"index;size:5;not null;default:'tr'" json:"lang"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Summary     string    `gorm:"size:500" json:"summary"`
	Content     string    `gorm:"type:text" json:"content"`
	AuthorName  string    `gorm:"size:200" json:"authorName"`
	Published   bool      `gorm:"index" json:"published"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Comment is a reader comment on a blog post.
type Comment struct {
	UUIDModel
	PostID     uint64    `gorm:"index;not null" json:"postId"`
	ProfileID  uint64    `gorm:"index;not null" json:"profileId"`
	AuthorName string    `gorm:"size:200" json:"authorName"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ParentID   *string   `gorm:"size:36;index" json:"parentId,omitempty"`
	Approved   bool      `gorm:"index" json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
}
