// Package auth serves the local admin login, logout and the current profile.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	identity "github.com/unilabvision/myuni/internal/auth"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/ratelimit"
	"github.com/unilabvision/myuni/internal/web/handler"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
)

const (
	// LoginPath signs in a local account.
	LoginPath = handler.APIPath + "/auth/login"
	// LogoutPath ends the session.
	LogoutPath = handler.APIPath + "/auth/logout"
	// MePath returns the signed-in profile.
	MePath = handler.APIPath + "/auth/me"

	rateLimitPrefix = "login:"
)

// Service is the auth handler service.
type Service struct {
	cfg     *config.Config
	local   *identity.LocalProvider
	limiter ratelimit.RateLimiter
}

// Handler is the auth handler.
var Handler = Service{}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Lang     string `json:"lang"`
}

// Init registers the routes. A nil limiter leaves login attempts unlimited.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, limiter ratelimit.RateLimiter) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.local = identity.NewLocalProvider(db)
	s.limiter = limiter

	app.Post(LoginPath, s.Login)
	app.Post(LogoutPath, s.Logout)
	app.Get(MePath, authmw.RequireUser, s.Me)
}

// Login checks the password of a local account and opens a session.
func (s *Service) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	if !s.cfg.Auth.Local.Enabled {
		return handler.Fail(c, fiber.StatusForbidden, lang, i18n.Forbidden)
	}

	if s.limiter != nil {
		allowed, err := s.limiter.TryConsume(c.UserContext(), rateLimitPrefix+c.IP())
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing login attempt")
		} else if !allowed {
			return handler.Fail(c, fiber.StatusTooManyRequests, lang, i18n.TooManyRequests)
		}
	}

	p, err := s.local.Authenticate(in.Email, in.Password)

	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		log.Info().Str("ip", c.IP()).Msg("failed login attempt")
		return handler.Fail(c, fiber.StatusUnauthorized, lang, i18n.InvalidCredentials)
	case errors.Is(err, identity.ErrAccountDisabled):
		return handler.Fail(c, fiber.StatusForbidden, lang, i18n.Forbidden)
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	if err = OpenSession(c, s.cfg, p, ""); err != nil {
		log.Error().Err(err).Msg("failed to open session")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	log.Info().Uint64("profile_id", p.ID).Msg("local login")

	return c.JSON(fiber.Map{"success": true, "profile": p})
}

// Logout ends the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	CloseSession(c, s.cfg)

	return c.JSON(fiber.Map{"success": true})
}

// Me returns the signed-in profile.
func (s *Service) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "profile": authmw.CurrentProfile(c)})
}
