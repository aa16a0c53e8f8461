package blog

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/web/handler"
	"github.com/unilabvision/myuni/internal/web/handler/handlertest"
	"github.com/unilabvision/myuni/internal/web/templates"
)

func setup(t *testing.T) *fiber.App {
	t.Helper()

	db := dbtest.New(t)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	posts := []models.BlogPost{
		{Slug: "yapay-zeka", Lang: "tr", Title: "Yapay Zeka Rehberi", Summary: "Giriş yazısı", Content: "İçerik", Published: true, PublishedAt: now},
		{Slug: "eski-yazi", Lang: "tr", Title: "Eski Yazı", Published: true, PublishedAt: now.AddDate(0, -1, 0)},
		{Slug: "taslak", Lang: "tr", Title: "Taslak Yazı", Published: false, PublishedAt: now},
		{Slug: "ai-guide", Lang: "en", Title: "AI Guide", AuthorName: "Deniz", Content: "Body", Published: true, PublishedAt: now},
	}
	for i := range posts {
		require.NoError(t, db.Create(&posts[i]).Error)
	}

	comments := []models.Comment{
		{PostID: posts[3].ID, ProfileID: 1, AuthorName: "Ada", Content: "Great read", Approved: true},
		{PostID: posts[3].ID, ProfileID: 2, AuthorName: "Hidden", Content: "Awaiting review", Approved: false},
	}
	for i := range comments {
		require.NoError(t, db.Create(&comments[i]).Error)
	}

	app := fiber.New(fiber.Config{Views: templates.NewEngine(false), ErrorHandler: handler.ErrorHandler})

	s := &Service{}
	s.Init(app, handlertest.Config(), db)

	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestList(t *testing.T) {
	app := setup(t)

	status, body := get(t, app, Path)
	require.Equal(t, fiber.StatusOK, status)

	assert.Contains(t, body, `<html lang="tr">`)
	assert.Contains(t, body, "Yapay Zeka Rehberi")
	assert.Contains(t, body, `href="/blog/yapay-zeka?lang=tr"`)
	assert.Contains(t, body, "14.03.2026")
	assert.Contains(t, body, `hreflang="en"`)
	assert.NotContains(t, body, "Taslak Yazı")
	assert.NotContains(t, body, "AI Guide")
	assert.Less(t, strings.Index(body, "Yapay Zeka Rehberi"), strings.Index(body, "Eski Yazı"))
}

func TestList_English(t *testing.T) {
	app := setup(t)

	status, body := get(t, app, Path+"?lang=en")
	require.Equal(t, fiber.StatusOK, status)

	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "AI Guide")
	assert.Contains(t, body, "March 14, 2026")
	assert.NotContains(t, body, "Yapay Zeka Rehberi")
}

func TestPost(t *testing.T) {
	app := setup(t)

	status, body := get(t, app, Path+"/ai-guide")
	require.Equal(t, fiber.StatusOK, status)

	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "<h1>AI Guide</h1>")
	assert.Contains(t, body, "Deniz")
	assert.Contains(t, body, "Great read")
	assert.NotContains(t, body, "Awaiting review")
}

func TestPost_NoComments(t *testing.T) {
	app := setup(t)

	status, body := get(t, app, Path+"/yapay-zeka")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "Henüz yorum yok.")
}

func TestPost_NotFound(t *testing.T) {
	app := setup(t)

	for _, slug := range []string{"taslak", "missing"} {
		status, body := get(t, app, Path+"/"+slug+"?lang=en")
		assert.Equal(t, fiber.StatusNotFound, status, slug)
		assert.Contains(t, body, "Post not found.", slug)
	}
}
