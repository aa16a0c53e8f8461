package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
)

func TestComments(t *testing.T) {
	db := dbtest.New(t)
	now := time.Now()

	first := models.Comment{PostID: 1, ProfileID: 1, Content: "first", Approved: true, CreatedAt: now.Add(-time.Minute)}
	second := models.Comment{PostID: 1, ProfileID: 2, Content: "second", Approved: true, CreatedAt: now}
	hidden := models.Comment{PostID: 1, ProfileID: 2, Content: "hidden", Approved: false}
	other := models.Comment{PostID: 2, ProfileID: 2, Content: "other", Approved: true}

	for _, c := range []*models.Comment{&second, &first, &hidden, &other} {
		require.NoError(t, Create(db, c))
	}

	reply := models.Comment{PostID: 1, ProfileID: 1, Content: "reply", Approved: true, ParentID: &first.ID, CreatedAt: now.Add(time.Minute)}
	require.NoError(t, Create(db, &reply))

	list, err := ListApproved(db, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "reply", list[2].Content)

	empty, err := ListApproved(db, 42)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	got, err := GetByID(db, first.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ProfileID)

	require.NoError(t, Delete(db, first.ID))
	_, err = GetByID(db, reply.ID)
	require.ErrorIs(t, err, ErrCommentNotFound)

	require.ErrorIs(t, Delete(db, first.ID), ErrCommentNotFound)
	require.ErrorIs(t, Create(nil, &models.Comment{}), controller.ErrDBNil)
}
