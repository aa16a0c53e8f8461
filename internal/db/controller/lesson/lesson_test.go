package lesson

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
)

func TestFinder(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, db.Create(&models.Lesson{ID: "go-101", Title: "Variables", Type: "video", Duration: 12}).Error)

	f := Finder{DB: db}

	l, err := f.FindLesson(context.Background(), "go-101")
	require.NoError(t, err)
	assert.Equal(t, "Variables", l.Title)

	_, err = f.FindLesson(context.Background(), "nope")
	require.ErrorIs(t, err, ErrLessonNotFound)

	_, err = Finder{}.FindLesson(context.Background(), "go-101")
	require.ErrorIs(t, err, controller.ErrDBNil)
}
