// Package certificate emails completion certificates.
package certificate

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/web/handler"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
)

// Path of the certificate email endpoint.
const Path = handler.APIPath + "/send-certificate-email"

// itemLabels names the certificate item types per language.
var itemLabels = map[string]map[i18n.Lang]string{ //nolint:gochecknoglobals
	"course":     {i18n.TR: "kurs", i18n.EN: "course"},
	"workshop":   {i18n.TR: "atölye", i18n.EN: "workshop"},
	"event":      {i18n.TR: "etkinlik", i18n.EN: "event"},
	"internship": {i18n.TR: "staj", i18n.EN: "internship"},
}

var fieldKeys = map[string]i18n.Key{ //nolint:gochecknoglobals
	"UserEmail": i18n.InvalidEmail,
	"ItemType":  i18n.ItemTypeInvalid,
}

// Service is the certificate handler service.
type Service struct {
	cfg       *config.Config
	notifier  mail.Notifier
	validator *validator.Validate
}

// Handler is the certificate handler.
var Handler = Service{}

type sendRequest struct {
	UserEmail         string `json:"userEmail"         validate:"required,email,max=255"`
	UserName          string `json:"userName"          validate:"required,max=200"`
	CertificateNumber string `json:"certificateNumber" validate:"required,max=100"`
	ItemType          string `json:"itemType"          validate:"required,oneof=course workshop event internship"`
	ItemTitle         string `json:"itemTitle"         validate:"required,max=300"`
	CertificateURL    string `json:"certificateUrl"    validate:"required,url,max=500"`
	Lang              string `json:"lang"`
}

// Init registers the route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, notifier mail.Notifier) {
	if app == nil || cfg == nil || notifier == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.notifier = notifier
	s.validator = validator.New()

	app.Post(Path, authmw.RequireUser, s.Send)
}

// Send emails the certificate link to the recipient.
func (s *Service) Send(c *fiber.Ctx) error {
	var in sendRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	in.UserEmail = strings.TrimSpace(in.UserEmail)
	in.ItemType = strings.ToLower(strings.TrimSpace(in.ItemType))

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, lang, handler.ValidationKey(err, fieldKeys, i18n.CertificateInvalid))
	}

	id, err := s.notifier.Send(c.UserContext(), mail.Certificate, lang, []string{in.UserEmail}, map[string]any{
		"user_name":          in.UserName,
		"certificate_number": in.CertificateNumber,
		"item_type":          in.ItemType,
		"item_type_label":    itemLabels[in.ItemType][lang],
		"item_title":         in.ItemTitle,
		"certificate_url":    in.CertificateURL,
	})
	if err != nil {
		log.Error().Err(err).Str("certificate", in.CertificateNumber).Msg("failed to send certificate email")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.EmailSendFailed)
	}

	log.Info().Str("certificate", in.CertificateNumber).Str("message_id", id).
		Uint64("profile_id", authmw.CurrentProfile(c).ID).Msg("certificate email sent")

	return c.JSON(fiber.Map{"success": true, "messageId": id})
}
