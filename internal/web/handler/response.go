package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unilabvision/myuni/internal/i18n"
)

// Lang picks the response language from the lang query parameter, the
// explicit values (usually the lang field of the body) and Accept-Language.
func Lang(c *fiber.Ctx, explicit ...string) i18n.Lang {
	candidates := append([]string{c.Query("lang")}, explicit...)

	return i18n.Detect(c.Get(fiber.HeaderAcceptLanguage), candidates...)
}

// Fail writes the localized error envelope.
func Fail(c *fiber.Ctx, status int, lang i18n.Lang, key i18n.Key) error {
	return FailMessage(c, status, i18n.T(lang, key))
}

// FailMessage writes the error envelope with msg.
func FailMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// ErrorHandler turns errors returned by handlers into the error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	lang := Lang(c)

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")

		return Fail(c, code, lang, i18n.InternalError)
	}

	switch code {
	case fiber.StatusNotFound:
		return Fail(c, code, lang, i18n.NotFound)
	case fiber.StatusUnauthorized:
		return Fail(c, code, lang, i18n.Unauthorized)
	case fiber.StatusForbidden:
		return Fail(c, code, lang, i18n.Forbidden)
	case fiber.StatusTooManyRequests:
		return Fail(c, code, lang, i18n.TooManyRequests)
	case fiber.StatusRequestEntityTooLarge:
		return Fail(c, code, lang, i18n.RequestTooLarge)
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return Fail(c, code, lang, i18n.InvalidRequest)
	default:
		return FailMessage(c, code, fe.Message)
	}
}
