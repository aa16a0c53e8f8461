package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
	"github.com/unilabvision/myuni/internal/web/session/sessiontest"
)

func newApp(s authmw.Sessions) *fiber.App {
	app := fiber.New()
	app.Use(s.Load)
	app.Get("/who", func(c *fiber.Ctx) error {
		p := authmw.CurrentProfile(c)
		if p == nil {
			return c.SendString("anonymous")
		}

		return c.SendString(p.Email)
	})
	app.Get("/user", authmw.RequireUser, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", authmw.RequireAdmin, func(c *fiber.Ctx) error { return c.SendString("ok") })

	return app
}

func do(t *testing.T, app *fiber.App, path, cookie string) int {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: authmw.DefaultCookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return resp.StatusCode
}

func TestRequireUserAndAdmin(t *testing.T) {
	sessiontest.Init()

	app := newApp(authmw.Sessions{})

	userSID, err := sessiontest.SignIn(models.Profile{ID: 1, Email: "u@example.com", Role: models.RoleUser, Active: true})
	require.NoError(t, err)

	adminSID, err := sessiontest.SignIn(models.Profile{ID: 2, Email: "a@example.com", Role: models.RoleAdmin, Active: true})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/user", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/user", "bogus"))
	assert.Equal(t, fiber.StatusOK, do(t, app, "/user", userSID))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/admin", ""))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "/admin", userSID))
	assert.Equal(t, fiber.StatusOK, do(t, app, "/admin", adminSID))
}

func TestLoad_ReloadsProfile(t *testing.T) {
	sessiontest.Init()

	db := dbtest.New(t)
	p := models.Profile{Email: "a@example.com", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Create(&p).Error)

	sid, err := sessiontest.SignIn(p)
	require.NoError(t, err)

	app := newApp(authmw.Sessions{DB: db})
	assert.Equal(t, fiber.StatusOK, do(t, app, "/admin", sid))

	require.NoError(t, db.Model(&p).Update("role", models.RoleUser).Error)
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "/admin", sid))

	require.NoError(t, db.Model(&p).Update("active", false).Error)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/user", sid))
}
