// Package aichat serves the AI chat endpoint.
package aichat

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/chat"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/setting"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/web/handler"
)

const (
	// Path of the chat endpoint.
	Path = handler.APIPath + "/ai-chat"

	// SettingName holds the runtime switch of the endpoint, {"enabled": false} turns it off.
	SettingName = "ai_chat"
)

// Replier produces chat replies.
type Replier interface {
	Reply(ctx context.Context, req chat.Request) (*chat.Reply, error)
}

// Service is the AI chat handler service.
type Service struct {
	cfg     *config.Config
	db      *gorm.DB
	replier Replier
}

// Handler is the AI chat handler.
var Handler = Service{}

type request struct {
	Message             any         `json:"message"`
	LessonID            string      `json:"lessonId"`
	ConversationHistory []chat.Turn `json:"conversationHistory"`
	Lang                string      `json:"lang"`
}

type switchSetting struct {
	Enabled *bool `json:"enabled"`
}

// Init registers the chat route. replier may be nil when no completion
// service is configured; requests then fail with 500.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, replier Replier) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.replier = replier

	app.Post(Path, s.Post)
}

// Post answers a chat message.
func (s *Service) Post(c *fiber.Ctx) error {
	if s.replier == nil {
		log.Error().Msg("ai chat requested but no completion service is configured")
		return handler.Fail(c, fiber.StatusInternalServerError, handler.Lang(c), i18n.AIUnavailable)
	}

	var in request
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	message, err := chat.ValidateMessage(in.Message)
	if err != nil {
		var verr *chat.ValidationError
		if errors.As(err, &verr) {
			return handler.Fail(c, fiber.StatusBadRequest, lang, verr.Key)
		}

		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.InvalidRequest)
	}

	if !s.enabled() {
		return handler.Fail(c, fiber.StatusServiceUnavailable, lang, i18n.AIUnavailable)
	}

	reply, err := s.replier.Reply(c.UserContext(), chat.Request{
		Message:  message,
		LessonID: in.LessonID,
		History:  in.ConversationHistory,
		Lang:     lang,
	})
	if err != nil {
		return s.fail(c, lang, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       reply.Message,
		"lessonContext": reply.LessonContext,
	})
}

func (s *Service) fail(c *fiber.Ctx, lang i18n.Lang, err error) error {
	if errors.Is(err, chat.ErrNoCompletion) {
		log.Error().Err(err).Msg("ai chat misconfigured")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.AIUnavailable)
	}

	kind := chat.KindOf(err)
	fallback := chat.Fallback(lang)

	log.Error().Err(err).Str("kind", kind.String()).Msg("ai chat generation failed")

	msg := fallback
	if kind == chat.KindSafety {
		msg = i18n.T(lang, i18n.AISafety)
	}

	return c.Status(kind.HTTPStatus()).JSON(fiber.Map{
		"success": false,
		"error":   msg,
		"message": fallback,
	})
}

func (s *Service) enabled() bool {
	var sw switchSetting

	err := setting.LoadJSON(s.db, SettingName, &sw)
	if err != nil {
		if !errors.Is(err, setting.ErrSettingNotFound) {
			log.Warn().Err(err).Msg("failed to load ai chat setting")
		}

		return true
	}

	return sw.Enabled == nil || *sw.Enabled
}
