package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	authz "github.com/unilabvision/myuni/internal/auth"
	"github.com/unilabvision/myuni/internal/db/controller/profile"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/web/handler"
	"github.com/unilabvision/myuni/internal/web/session"
)

const (
	// LocalsProfile is the fiber.Locals key of the signed-in profile.
	LocalsProfile = "CurrentProfile"

	// DefaultCookieName is used when no cookie name is configured.
	DefaultCookieName = "session"
)

// Sessions resolves session cookies.
type Sessions struct {
	CookieName string
	// DB, when set, is used to reload the profile so role changes and
	// deactivation take effect before the session expires.
	DB *gorm.DB
}

// Cookie returns the configured cookie name.
func (s Sessions) Cookie() string {
	if s.CookieName == "" {
		return DefaultCookieName
	}

	return s.CookieName
}

// Load stores the profile of a valid session in the request locals.
func (s Sessions) Load(c *fiber.Ctx) error {
	originalURL := strings.ToLower(c.OriginalURL())
	if strings.HasPrefix(originalURL, "/static") {
		return c.Next()
	}

	sessionID := c.Cookies(s.Cookie())
	if sessionID == "" {
		return c.Next()
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Debug().Err(err).Msg("failed to read session")
		}

		return c.Next()
	}

	if sessData.Profile.ID == 0 {
		return c.Next()
	}

	current := &sessData.Profile

	if s.DB != nil {
		fresh, err := profile.GetByID(s.DB, sessData.Profile.ID)
		if err != nil {
			log.Warn().Err(err).Uint64("profile_id", sessData.Profile.ID).Msg("session profile lookup failed")
			return c.Next()
		}

		current = fresh
	}

	if !current.Active {
		return c.Next()
	}

	c.Locals(LocalsProfile, current)

	return c.Next()
}

// CurrentProfile returns the signed-in profile, nil for anonymous requests.
func CurrentProfile(c *fiber.Ctx) *models.Profile {
	p, _ := c.Locals(LocalsProfile).(*models.Profile)

	return p
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(c *fiber.Ctx) error {
	if CurrentProfile(c) == nil {
		return handler.Fail(c, fiber.StatusUnauthorized, handler.Lang(c), i18n.Unauthorized)
	}

	return c.Next()
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(c *fiber.Ctx) error {
	p := CurrentProfile(c)
	if p == nil {
		return handler.Fail(c, fiber.StatusUnauthorized, handler.Lang(c), i18n.Unauthorized)
	}

	if !authz.CanAdminister(p) {
		log.Warn().Uint64("profile_id", p.ID).Str("path", c.Path()).Msg("profile lacks admin role")

		return handler.Fail(c, fiber.StatusForbidden, handler.Lang(c), i18n.Forbidden)
	}

	return c.Next()
}
