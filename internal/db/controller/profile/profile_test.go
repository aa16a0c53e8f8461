package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
)

func TestCreateLocal(t *testing.T) {
	db := dbtest.New(t)

	p, err := CreateLocal(db, " Admin@Example.com ", "changeme", "Ada", "Admin", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", p.Email)
	assert.True(t, p.VerifyPassword("changeme"))
	assert.Equal(t, models.AuthSourceLocal, p.AuthSource)

	_, err = CreateLocal(db, "admin@example.com", "other", "", "", models.RoleUser)
	require.ErrorIs(t, err, ErrEmailExists)

	got, err := GetLocalByEmail(db, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	count, err := CountAdmins(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = CreateLocal(nil, "x@y.z", "p", "", "", models.RoleUser)
	require.ErrorIs(t, err, controller.ErrDBNil)
}

func TestUpsertExternal(t *testing.T) {
	db := dbtest.New(t)

	p, err := UpsertExternal(db, Identity{Subject: "sub-1", Email: "User@Example.com", FirstName: "U"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, p.Role)
	require.NotNil(t, p.ExternalID)
	assert.Equal(t, "sub-1", *p.ExternalID)

	again, err := UpsertExternal(db, Identity{Subject: "sub-1", Email: "new@example.com", FirstName: "N", Admin: true})
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, "new@example.com", again.Email)
	assert.True(t, again.IsAdmin())

	other, err := UpsertExternal(db, Identity{Subject: "sub-2", Email: "two@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, other.ID)

	loaded, err := GetByID(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "N", loaded.FirstName)

	_, err = GetByID(db, 999)
	require.ErrorIs(t, err, ErrProfileNotFound)

	_, err = GetLocalByEmail(db, "new@example.com")
	require.ErrorIs(t, err, ErrProfileNotFound)
}
