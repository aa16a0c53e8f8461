package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
)

func TestListAndGet(t *testing.T) {
	db := dbtest.New(t)
	now := time.Now()

	posts := []models.BlogPost{
		{Slug: "eski", Lang: "tr", Title: "Eski", Published: true, PublishedAt: now.Add(-48 * time.Hour)},
		{Slug: "yeni", Lang: "tr", Title: "Yeni", Published: true, PublishedAt: now},
		{Slug: "draft", Lang: "tr", Title: "Taslak", Published: false, PublishedAt: now},
		{Slug: "english", Lang: "en", Title: "English", Published: true, PublishedAt: now},
	}
	require.NoError(t, db.Create(&posts).Error)

	tr, err := ListPublished(db, "tr", 0)
	require.NoError(t, err)
	require.Len(t, tr, 2)
	assert.Equal(t, "yeni", tr[0].Slug)

	limited, err := ListPublished(db, "tr", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := GetPublishedBySlug(db, "english")
	require.NoError(t, err)
	assert.Equal(t, "English", got.Title)

	_, err = GetPublishedBySlug(db, "draft")
	require.ErrorIs(t, err, ErrPostNotFound)

	ok, err := Exists(db, posts[2].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(db, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}
