package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/models"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
	"github.com/unilabvision/myuni/internal/web/session"
)

const sameSite = "Lax"

// CookieName returns the session cookie name of cfg.
func CookieName(cfg *config.Config) string {
	return authmw.Sessions{CookieName: cfg.Webserver.Session.CookieName}.Cookie()
}

// OpenSession stores a session for p and sets the session cookie.
func OpenSession(c *fiber.Ctx, cfg *config.Config, p *models.Profile, idToken string) error {
	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return err
	}

	data := &session.Data{Profile: *p, IDToken: idToken}
	if err = data.Write(sessionID, cfg.Webserver.Session.ExpiryTime); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName(cfg),
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !cfg.DevMode,
		HTTPOnly: true,
		SameSite: sameSite,
	})

	return nil
}

// CloseSession deletes the current session and expires its cookie. The
// stored data is returned when the session existed.
func CloseSession(c *fiber.Ctx, cfg *config.Config) *session.Data {
	var data *session.Data

	if sessionID := c.Cookies(CookieName(cfg)); sessionID != "" {
		d := new(session.Data)
		if err := d.Read(sessionID); err == nil {
			data = d
		}

		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName(cfg),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   !cfg.DevMode,
		HTTPOnly: true,
		SameSite: sameSite,
	})

	return data
}
