package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/web/session"
	"github.com/unilabvision/myuni/internal/web/session/sessiontest"
)

func TestWriteRead(t *testing.T) {
	st := sessiontest.Init()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, id, 64)

	in := session.Data{
		Profile: models.Profile{ID: 7, Email: "a@example.com", Role: models.RoleAdmin, Password: "hash"},
		IDToken: "raw",
	}
	require.NoError(t, in.Write(id, time.Minute))
	assert.Equal(t, 1, st.Len())

	var out session.Data
	require.NoError(t, out.Read(id))
	assert.Equal(t, uint64(7), out.Profile.ID)
	assert.Equal(t, models.RoleAdmin, out.Profile.Role)
	assert.Equal(t, "raw", out.IDToken)
	assert.Empty(t, out.Profile.Password)

	require.NoError(t, session.Delete(id))
	require.ErrorIs(t, new(session.Data).Read(id), session.ErrNotFound)
}

func TestInitNil(t *testing.T) {
	assert.Panics(t, func() { session.Init(nil) })
}

func TestNotInitialized(t *testing.T) {
	prev := session.Store
	session.Store = nil

	t.Cleanup(func() { session.Store = prev })

	require.ErrorIs(t, new(session.Data).Write("id", time.Minute), session.ErrNotInitialized)
	require.ErrorIs(t, new(session.Data).Read("id"), session.ErrNotInitialized)
	require.ErrorIs(t, session.Delete("id"), session.ErrNotInitialized)
}
