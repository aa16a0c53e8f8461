// Package newsletter handles newsletter sign ups and unsubscribes.
package newsletter

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/captcha"
	"github.com/unilabvision/myuni/internal/codegen"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/newsletter"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/ratelimit"
	"github.com/unilabvision/myuni/internal/spam"
	"github.com/unilabvision/myuni/internal/web/handler"
)

const (
	// Path of the subscribe endpoint.
	Path = handler.APIPath + "/newsletter"
	// UnsubscribePath is the link target of the welcome email.
	UnsubscribePath = Path + "/unsubscribe"

	rateLimitPrefix = "newsletter:"
)

// Service is the newsletter handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	notifier  mail.Notifier
	limiter   ratelimit.RateLimiter
	captcha   captcha.Verifier
	validator *validator.Validate
	now       func() time.Time
}

// Handler is the newsletter handler.
var Handler = Service{}

type subscribeRequest struct {
	FirstName     string `json:"firstName"     validate:"required,max=100"`
	LastName      string `json:"lastName"      validate:"required,max=100"`
	Email         string `json:"email"         validate:"required,email,max=255"`
	HCaptchaToken string `json:"hCaptchaToken"`
	Honeypot      string `json:"honeypot"`
	Timestamp     int64  `json:"timestamp"`
	Lang          string `json:"lang"`
}

var fieldKeys = map[string]i18n.Key{ //nolint:gochecknoglobals
	"FirstName": i18n.NameRequired,
	"LastName":  i18n.NameRequired,
	"Email":     i18n.InvalidEmail,
}

// Init registers the newsletter routes. A nil verifier disables captcha checks.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	notifier mail.Notifier,
	limiter ratelimit.RateLimiter,
	verifier captcha.Verifier,
) {
	if app == nil || cfg == nil || db == nil || notifier == nil || limiter == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	if verifier == nil {
		verifier = captcha.Disabled{}
	}

	s.cfg = cfg
	s.db = db
	s.notifier = notifier
	s.limiter = limiter
	s.captcha = verifier
	s.validator = validator.New()

	if s.now == nil {
		s.now = time.Now
	}

	app.Post(Path, s.Subscribe)
	app.Get(UnsubscribePath, s.Unsubscribe)
}

// Subscribe adds an address to the newsletter.
func (s *Service) Subscribe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ip := c.IP()

	allowed, err := s.limiter.TryConsume(ctx, rateLimitPrefix+ip)
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
	} else if !allowed {
		return handler.Fail(c, fiber.StatusTooManyRequests, handler.Lang(c), i18n.TooManyRequests)
	}

	var in subscribeRequest
	if err = c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if err = s.validator.Struct(in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, lang, handler.ValidationKey(err, fieldKeys, i18n.InvalidRequest))
	}

	if spam.HoneypotFilled(in.Honeypot) || spam.FilledTooFast(in.Timestamp, s.now(), spam.MinFillTime) {
		log.Info().Str("ip", ip).Msg("newsletter submission rejected as spam")
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.SpamDetected)
	}

	ok, err := s.captcha.Verify(ctx, in.HCaptchaToken, ip)
	if err != nil && !errors.Is(err, captcha.ErrTokenMissing) {
		log.Error().Err(err).Str("ip", ip).Msg("captcha verification failed")
	}

	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.CaptchaFailed)
	}

	token, err := codegen.Token()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate unsubscribe token")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	sub := models.NewsletterSubscription{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		UnsubscribeToken: token,
		IP:               ip,
	}

	outcome, err := newsletter.Subscribe(s.db, &sub, s.now())
	if errors.Is(err, newsletter.ErrAlreadySubscribed) {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.AlreadySubscribed)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to save newsletter subscription")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	reactivated := outcome == newsletter.Reactivated

	data := map[string]any{
		"first_name":        sub.FirstName,
		"last_name":         sub.LastName,
		"email":             sub.Email,
		"unsubscribe_token": sub.UnsubscribeToken,
		"ip":                ip,
		"reactivated":       reactivated,
	}

	_, errWelcome := s.notifier.Send(ctx, mail.NewsletterWelcome, lang, []string{sub.Email}, data)
	if errWelcome != nil {
		log.Warn().Err(errWelcome).Str("subscription_id", sub.ID).Msg("newsletter welcome not sent")
	}

	_, errAdmin := s.notifier.NotifyAdmins(ctx, mail.NewsletterAdmin, lang, data)
	if errAdmin != nil {
		log.Warn().Err(errAdmin).Str("subscription_id", sub.ID).Msg("newsletter admin notice not sent")
	}

	log.Info().Str("subscription_id", sub.ID).Bool("reactivated", reactivated).Msg("newsletter subscription")

	msg := i18n.SubscribeSuccess
	if reactivated {
		msg = i18n.ResubscribeSuccess
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      i18n.T(lang, msg),
		"submissionId": sub.ID,
		"emailsSent": fiber.Map{
			"subscriber": errWelcome == nil,
			"admin":      errAdmin == nil,
		},
	})
}

// Unsubscribe opts out the subscription owning the token.
func (s *Service) Unsubscribe(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.TokenRequired)
	}

	sub, err := newsletter.Unsubscribe(s.db, token, s.now())
	if errors.Is(err, newsletter.ErrSubscriptionNotFound) {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.SubscriptionMissing)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to unsubscribe")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	log.Info().Str("subscription_id", sub.ID).Msg("newsletter unsubscribe")

	return c.JSON(fiber.Map{"success": true})
}
