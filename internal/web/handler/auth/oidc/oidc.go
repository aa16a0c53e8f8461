package oidc

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	identity "github.com/unilabvision/myuni/internal/auth"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/web/handler"
	"github.com/unilabvision/myuni/internal/web/handler/auth"
)

const (
	// LoginPath is the path to initiate OIDC login.
	LoginPath = handler.RootPath + "auth/oidc/login"

	// CallbackPath is the path for OIDC callback.
	CallbackPath = handler.RootPath + "auth/oidc/callback"

	// LogoutPath is the path for OIDC logout.
	LogoutPath = handler.RootPath + "auth/oidc/logout"

	// StateCookie holds the state token between login and callback.
	StateCookie = "oidc_state"

	stateTTL = 5 * time.Minute
)

// Provider is the identity provider used by the flow.
type Provider interface {
	GetAuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*models.Profile, string, error)
	GetLogoutURL(idToken, postLogoutRedirectURI string) string
}

var _ Provider = (*identity.OIDCProvider)(nil)

// Service is the OIDC handler service.
type Service struct {
	cfg      *config.Config
	provider Provider
}

// Handler is the OIDC handler.
var Handler = Service{}

// Init registers the routes when a provider is configured.
func (s *Service) Init(app *fiber.App, cfg *config.Config, provider Provider) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.provider = provider

	if provider == nil {
		log.Info().Msg("OIDC authentication is disabled")
		return
	}

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)
	app.Get(LogoutPath, s.Logout)
}

// Login initiates the OIDC login flow.
func (s *Service) Login(c *fiber.Ctx) error {
	state, err := identity.GenerateStateToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate state token")
		return handler.Fail(c, fiber.StatusInternalServerError, handler.Lang(c), i18n.InternalError)
	}

	c.Cookie(&fiber.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     CallbackPath,
		MaxAge:   int(stateTTL.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(s.provider.GetAuthURL(state))
}

// Callback handles the OIDC callback.
func (s *Service) Callback(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	code := c.Query("code")
	state := c.Query("state")
	expected := c.Cookies(StateCookie)

	c.Cookie(&fiber.Cookie{
		Name:     StateCookie,
		Value:    "",
		Path:     CallbackPath,
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if code == "" || state == "" {
		log.Warn().Msg("missing code or state in OIDC callback")
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.InvalidRequest)
	}

	if expected == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		log.Warn().Msg("OIDC state mismatch")
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.InvalidRequest)
	}

	p, idToken, err := s.provider.HandleCallback(c.UserContext(), code)
	if err != nil {
		log.Error().Err(err).Msg("OIDC authentication failed")
		return handler.Fail(c, fiber.StatusUnauthorized, lang, i18n.Unauthorized)
	}

	if err = auth.OpenSession(c, s.cfg, p, idToken); err != nil {
		log.Error().Err(err).Msg("failed to open session")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	log.Info().Uint64("profile_id", p.ID).Msg("profile signed in via OIDC")

	return c.Redirect(redirectTarget(s.cfg))
}

// Logout ends the session and, when supported, the provider session.
func (s *Service) Logout(c *fiber.Ctx) error {
	data := auth.CloseSession(c, s.cfg)

	var idToken string
	if data != nil {
		idToken = data.IDToken
	}

	if logoutURL := s.provider.GetLogoutURL(idToken, redirectTarget(s.cfg)); logoutURL != "" {
		return c.Redirect(logoutURL)
	}

	return c.Redirect(redirectTarget(s.cfg))
}

func redirectTarget(cfg *config.Config) string {
	if cfg.Webserver.URL != "" {
		return cfg.Webserver.URL
	}

	return handler.RootPath
}
