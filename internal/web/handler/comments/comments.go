// Package comments serves blog post comments.
package comments

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/auth"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/blog"
	"github.com/unilabvision/myuni/internal/db/controller/comment"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/spam"
	"github.com/unilabvision/myuni/internal/web/handler"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
)

const (
	// Path of the comments endpoint.
	Path = handler.APIPath + "/comments"

	minContent  = 2
	maxContent  = 2000
	maxLinks    = 2
	repeatedRun = 10
)

// Service is the comments handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the comments handler.
var Handler = Service{}

type createRequest struct {
	PostID   handler.FlexID `json:"postId"`
	Content  string         `json:"content"`
	ParentID string         `json:"parentId"`
	Lang     string         `json:"lang"`
}

// Init registers the comment routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.List)
	app.Post(Path, authmw.RequireUser, s.Create)
	app.Delete(Path, authmw.RequireUser, s.Delete)
}

// List returns the approved comments of a post.
func (s *Service) List(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	postID, ok := handler.ParseID(c.Query("postId"))
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.PostIDRequired)
	}

	list, err := comment.ListApproved(s.db, postID)
	if err != nil {
		log.Error().Err(err).Uint64("post_id", postID).Msg("failed to list comments")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	return c.JSON(fiber.Map{"comments": list})
}

// Create adds a comment by the signed-in profile.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	if in.PostID == 0 {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.PostIDRequired)
	}

	content := strings.TrimSpace(in.Content)
	if n := utf8.RuneCountInString(content); n < minContent || n > maxContent {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.CommentLength)
	}

	if spam.TooManyLinks(content, maxLinks) || spam.RepeatedChars(content, repeatedRun) {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.CommentSpam)
	}

	postID := uint64(in.PostID)

	exists, err := blog.Exists(s.db, postID)
	if err != nil {
		log.Error().Err(err).Uint64("post_id", postID).Msg("failed to look up post")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	if !exists {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.PostNotFound)
	}

	var parentID *string

	if pid := strings.TrimSpace(in.ParentID); pid != "" {
		parent, errParent := comment.GetByID(s.db, pid)
		if errParent != nil && !errors.Is(errParent, comment.ErrCommentNotFound) {
			log.Error().Err(errParent).Str("parent_id", pid).Msg("failed to look up parent comment")
			return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
		}

		if parent == nil || parent.PostID != postID {
			return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.ParentInvalid)
		}

		parentID = &parent.ID
	}

	author := authmw.CurrentProfile(c)

	cm := models.Comment{
		PostID:     postID,
		ProfileID:  author.ID,
		AuthorName: author.DisplayName(),
		Content:    content,
		ParentID:   parentID,
		Approved:   true,
	}

	if err = comment.Create(s.db, &cm); err != nil {
		log.Error().Err(err).Uint64("post_id", postID).Msg("failed to create comment")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": cm})
}

// Delete removes a comment owned by the signed-in profile, admins may remove any.
func (s *Service) Delete(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	id := strings.TrimSpace(c.Query("commentId"))
	if id == "" {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.CommentIDRequired)
	}

	cm, err := comment.GetByID(s.db, id)
	if errors.Is(err, comment.ErrCommentNotFound) {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.CommentNotFound)
	}

	if err != nil {
		log.Error().Err(err).Str("comment_id", id).Msg("failed to look up comment")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	current := authmw.CurrentProfile(c)
	if !auth.CanManage(current, cm.ProfileID) {
		return handler.Fail(c, fiber.StatusForbidden, lang, i18n.CommentForbidden)
	}

	if err = comment.Delete(s.db, cm.ID); err != nil {
		log.Error().Err(err).Str("comment_id", id).Msg("failed to delete comment")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	log.Info().Str("comment_id", cm.ID).Uint64("profile_id", current.ID).Msg("comment deleted")

	return c.JSON(fiber.Map{"success": true})
}
