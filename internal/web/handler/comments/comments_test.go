package comments

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/web/handler/handlertest"
	"github.com/unilabvision/myuni/internal/web/session/sessiontest"
)

type fixture struct {
	app   *fiber.App
	db    *gorm.DB
	post  models.BlogPost
	other models.BlogPost
	user  string
	peer  string
	admin string
	users map[string]models.Profile
}

func setup(t *testing.T) *fixture {
	t.Helper()

	sessiontest.Init()

	db := dbtest.New(t)
	f := &fixture{db: db, users: map[string]models.Profile{}}

	f.post = models.BlogPost{Slug: "hello", Title: "Hello", Published: true, PublishedAt: time.Now()}
	f.other = models.BlogPost{Slug: "other", Title: "Other", Published: true, PublishedAt: time.Now()}
	require.NoError(t, db.Create(&f.post).Error)
	require.NoError(t, db.Create(&f.other).Error)

	for name, role := range map[string]models.Role{"user": models.RoleUser, "peer": models.RoleUser, "admin": models.RoleAdmin} {
		p := models.Profile{Email: name + "@example.com", FirstName: strings.ToUpper(name[:1]) + name[1:], Role: role, Active: true}
		require.NoError(t, db.Create(&p).Error)

		sid, err := sessiontest.SignIn(p)
		require.NoError(t, err)

		f.users[name] = p

		switch name {
		case "user":
			f.user = sid
		case "peer":
			f.peer = sid
		default:
			f.admin = sid
		}
	}

	f.app = handlertest.NewApp()

	s := &Service{}
	s.Init(f.app, handlertest.Config(), db)

	return f
}

func (f *fixture) create(t *testing.T, session string, body map[string]any) (int, map[string]any) {
	t.Helper()

	return handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodPost, Target: Path, Body: body, Session: session})
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)

	status, body := f.create(t, f.user, map[string]any{"postId": f.post.ID, "content": "  Great article, thanks!  "})
	require.Equal(t, fiber.StatusCreated, status, body)

	created := body["comment"].(map[string]any)
	assert.Equal(t, "Great article, thanks!", created["content"])
	assert.Equal(t, "User", created["authorName"])
	assert.NotEmpty(t, created["id"])

	status, body = f.create(t, f.peer, map[string]any{
		"postId":   strconv.FormatUint(f.post.ID, 10),
		"content":  "I agree.",
		"parentId": created["id"],
	})
	require.Equal(t, fiber.StatusCreated, status, body)

	status, body = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodGet, Target: Path + "?postId=" + strconv.FormatUint(f.post.ID, 10)})
	require.Equal(t, fiber.StatusOK, status)

	list := body["comments"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Great article, thanks!", list[0].(map[string]any)["content"])
	assert.Equal(t, "I agree.", list[1].(map[string]any)["content"])

	status, body = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodGet, Target: Path + "?postId=" + strconv.FormatUint(f.other.ID, 10)})
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["comments"])
}

func TestCreate_NamelessAuthorHidesEmail(t *testing.T) {
	f := setup(t)

	p := models.Profile{Email: "anon.reader@example.com", Role: models.RoleUser, Active: true}
	require.NoError(t, f.db.Create(&p).Error)

	sid, err := sessiontest.SignIn(p)
	require.NoError(t, err)

	status, body := f.create(t, sid, map[string]any{"postId": f.post.ID, "content": "Nice post."})
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "a***", body["comment"].(map[string]any)["authorName"])

	status, raw := handlertest.DoRaw(t, f.app, handlertest.Request{Method: fiber.MethodGet, Target: Path + "?postId=" + strconv.FormatUint(f.post.ID, 10)})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(raw), "anon.reader")
	assert.NotContains(t, string(raw), "example.com")
}

func TestList_RequiresPostID(t *testing.T) {
	f := setup(t)

	status, body := handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodGet, Target: Path})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)

	_, body := f.create(t, f.user, map[string]any{"postId": f.post.ID, "content": "root comment"})
	rootID := body["comment"].(map[string]any)["id"]

	_, body = f.create(t, f.user, map[string]any{"postId": f.other.ID, "content": "other comment"})
	otherID := body["comment"].(map[string]any)["id"]

	tests := []struct {
		name    string
		session string
		body    map[string]any
		status  int
	}{
		{"anonymous", "", map[string]any{"postId": f.post.ID, "content": "hello"}, fiber.StatusUnauthorized},
		{"missing post id", f.user, map[string]any{"content": "hello"}, fiber.StatusBadRequest},
		{"too short", f.user, map[string]any{"postId": f.post.ID, "content": " a "}, fiber.StatusBadRequest},
		{"too long", f.user, map[string]any{"postId": f.post.ID, "content": strings.Repeat("ab ", 700)}, fiber.StatusBadRequest},
		{"links", f.user, map[string]any{"postId": f.post.ID, "content": "see http://a.com http://b.com www.c.com"}, fiber.StatusBadRequest},
		{"repeated", f.user, map[string]any{"postId": f.post.ID, "content": "nice" + strings.Repeat("!", 10)}, fiber.StatusBadRequest},
		{"unknown post", f.user, map[string]any{"postId": 9999, "content": "hello"}, fiber.StatusNotFound},
		{"unknown parent", f.user, map[string]any{"postId": f.post.ID, "content": "hello", "parentId": "nope"}, fiber.StatusBadRequest},
		{"parent of other post", f.user, map[string]any{"postId": f.post.ID, "content": "hello", "parentId": otherID}, fiber.StatusBadRequest},
		{"valid reply", f.user, map[string]any{"postId": f.post.ID, "content": "hello", "parentId": rootID}, fiber.StatusCreated},
		{"two links ok", f.user, map[string]any{"postId": f.post.ID, "content": "see http://a.com and www.b.com"}, fiber.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := f.create(t, tt.session, tt.body)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestDelete(t *testing.T) {
	f := setup(t)

	_, body := f.create(t, f.user, map[string]any{"postId": f.post.ID, "content": "mine"})
	mine := body["comment"].(map[string]any)["id"].(string)

	_, body = f.create(t, f.user, map[string]any{"postId": f.post.ID, "content": "second"})
	second := body["comment"].(map[string]any)["id"].(string)

	del := func(session, id string) int {
		status, _ := handlertest.Do(t, f.app, handlertest.Request{
			Method:  fiber.MethodDelete,
			Target:  Path + "?commentId=" + id,
			Session: session,
		})

		return status
	}

	assert.Equal(t, fiber.StatusUnauthorized, del("", mine))
	assert.Equal(t, fiber.StatusBadRequest, del(f.user, ""))
	assert.Equal(t, fiber.StatusNotFound, del(f.user, "missing"))
	assert.Equal(t, fiber.StatusForbidden, del(f.peer, mine))
	assert.Equal(t, fiber.StatusOK, del(f.user, mine))
	assert.Equal(t, fiber.StatusNotFound, del(f.user, mine))
	assert.Equal(t, fiber.StatusOK, del(f.admin, second))

	var count int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}
