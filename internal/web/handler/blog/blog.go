// Package blog renders the localized blog list and post pages.
package blog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/config"
	blogdb "github.com/unilabvision/myuni/internal/db/controller/blog"
	"github.com/unilabvision/myuni/internal/db/controller/comment"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/web/handler"
	"github.com/unilabvision/myuni/internal/web/navigation"
)

const (
	// Path is the path to the blog list page.
	Path = handler.RootPath + "blog"

	// TemplateList is the name of the blog list template.
	TemplateList = "blog/list"

	// TemplatePost is the name of the blog post template.
	TemplatePost = "blog/post"

	// TemplateNotFound is the name of the not found page template.
	TemplateNotFound = "errors/404"

	// PageSize is the number of posts on the list page.
	PageSize = 50
)

// Service is the blog pages handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the blog pages handler.
var Handler = Service{}

// Init registers the blog pages.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.List)
	app.Get(Path+"/:slug", s.Post)
}

// List renders the published posts of the requested language, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	posts, err := blogdb.ListPublished(s.db, string(lang), PageSize)
	if err != nil {
		log.Error().Err(err).Str("lang", string(lang)).Msg("failed to list blog posts")
		return err
	}

	title := i18n.T(lang, i18n.BlogTitle)
	nav := navigation.NewContext(title, lang)
	nav.AddBreadcrumb(i18n.T(lang, i18n.HomeLabel), handler.RootPath, false).
		AddBreadcrumb(title, nav.Link(Path), true).
		WithAlternates(Path)

	return c.Render(TemplateList, fiber.Map{
		"SiteTitle":  s.cfg.Title,
		"Navigation": nav,
		"Posts":      posts,
	}, handler.BaseLayout)
}

// Post renders a single published post with its approved comments. The page
// is rendered in the language of the post.
func (s *Service) Post(c *fiber.Ctx) error {
	slug := c.Params("slug")

	post, err := blogdb.GetPublishedBySlug(s.db, slug)
	if errors.Is(err, blogdb.ErrPostNotFound) {
		return s.notFound(c, handler.Lang(c))
	}

	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to load blog post")
		return err
	}

	lang, _ := i18n.Parse(post.Lang)

	comments, err := comment.ListApproved(s.db, post.ID)
	if err != nil {
		log.Error().Err(err).Uint64("post_id", post.ID).Msg("failed to list comments")
		return err
	}

	nav := navigation.NewContext(post.Title, lang)
	nav.AddBreadcrumb(i18n.T(lang, i18n.HomeLabel), handler.RootPath, false).
		AddBreadcrumb(i18n.T(lang, i18n.BlogTitle), nav.Link(Path), false).
		AddBreadcrumb(post.Title, nav.Link(Path+"/"+post.Slug), true)

	return c.Render(TemplatePost, fiber.Map{
		"SiteTitle":  s.cfg.Title,
		"Navigation": nav,
		"Post":       post,
		"Comments":   comments,
	}, handler.BaseLayout)
}

func (s *Service) notFound(c *fiber.Ctx, lang i18n.Lang) error {
	nav := navigation.NewContext(i18n.T(lang, i18n.NotFound), lang)

	return c.Status(fiber.StatusNotFound).Render(TemplateNotFound, fiber.Map{
		"SiteTitle":  s.cfg.Title,
		"Navigation": nav,
		"Message":    i18n.T(lang, i18n.PostNotFound),
	}, handler.BaseLayout)
}
