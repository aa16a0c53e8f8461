package oidc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/web/handler/handlertest"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
	"github.com/unilabvision/myuni/internal/web/session"
	"github.com/unilabvision/myuni/internal/web/session/sessiontest"
)

type fakeProvider struct {
	codes     []string
	err       error
	logoutURL string
	hint      string
}

func (f *fakeProvider) GetAuthURL(state string) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) HandleCallback(_ context.Context, code string) (*models.Profile, string, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, "", f.err
	}

	return &models.Profile{ID: 42, Email: "ece@example.com", Role: models.RoleUser, Active: true}, "raw-id-token", nil
}

func (f *fakeProvider) GetLogoutURL(idToken, redirect string) string {
	f.hint = idToken
	if f.logoutURL == "" {
		return ""
	}

	return f.logoutURL + "?post_logout_redirect_uri=" + url.QueryEscape(redirect)
}

func setup(t *testing.T) (*fiber.App, *fakeProvider, *sessiontest.Storage) {
	t.Helper()

	store := sessiontest.Init()
	provider := &fakeProvider{}
	app := handlertest.NewApp()

	s := &Service{}
	s.Init(app, handlertest.Config(), provider)

	return app, provider, store
}

func do(t *testing.T, app *fiber.App, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func TestLoginAndCallback(t *testing.T) {
	app, provider, store := setup(t)

	resp := do(t, app, LoginPath)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	state := cookie(resp, StateCookie)
	require.NotNil(t, state)
	assert.True(t, state.HttpOnly)

	loc, err := url.Parse(resp.Header.Get(fiber.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "idp.example.com", loc.Host)
	assert.Equal(t, state.Value, loc.Query().Get("state"))

	resp = do(t, app, CallbackPath+"?code=abc&state="+url.QueryEscape(state.Value), &http.Cookie{Name: StateCookie, Value: state.Value})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://localhost", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, []string{"abc"}, provider.codes)

	sid := cookie(resp, authmw.DefaultCookieName)
	require.NotNil(t, sid)
	assert.Equal(t, 1, store.Len())

	var data session.Data
	require.NoError(t, data.Read(sid.Value))
	assert.Equal(t, uint64(42), data.Profile.ID)
	assert.Equal(t, "raw-id-token", data.IDToken)

	cleared := cookie(resp, StateCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestCallback_StateMismatch(t *testing.T) {
	app, provider, store := setup(t)

	tests := []struct {
		name    string
		target  string
		cookies []*http.Cookie
	}{
		{"no cookie", CallbackPath + "?code=abc&state=s1", nil},
		{"different state", CallbackPath + "?code=abc&state=s1", []*http.Cookie{{Name: StateCookie, Value: "s2"}}},
		{"missing code", CallbackPath + "?state=s1", []*http.Cookie{{Name: StateCookie, Value: "s1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, tt.target, tt.cookies...)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	assert.Empty(t, provider.codes)
	assert.Zero(t, store.Len())
}

func TestCallback_ProviderError(t *testing.T) {
	app, provider, store := setup(t)
	provider.err = errors.New("token exchange failed")

	resp := do(t, app, CallbackPath+"?code=abc&state=s1", &http.Cookie{Name: StateCookie, Value: "s1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, store.Len())
}

func TestLogout(t *testing.T) {
	app, provider, store := setup(t)
	provider.logoutURL = "https://idp.example.com/logout"

	sid, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{Profile: models.Profile{ID: 1}, IDToken: "hint-token"}).Write(sid, 0))

	resp := do(t, app, LogoutPath, &http.Cookie{Name: authmw.DefaultCookieName, Value: sid})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://idp.example.com/logout?post_logout_redirect_uri=http%3A%2F%2Flocalhost", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "hint-token", provider.hint)
	assert.Zero(t, store.Len())

	provider.logoutURL = ""

	resp = do(t, app, LogoutPath)
	assert.Equal(t, "http://localhost", resp.Header.Get(fiber.HeaderLocation))
}

func TestInit_NoProvider(t *testing.T) {
	sessiontest.Init()

	app := handlertest.NewApp()

	s := &Service{}
	s.Init(app, handlertest.Config(), nil)

	resp := do(t, app, LoginPath)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
