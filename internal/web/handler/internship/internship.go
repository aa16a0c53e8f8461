// Package internship receives internship applications and lets admins
// review them.
package internship

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/internship"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/web/handler"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
)

// Path of the internship application endpoint.
const Path = handler.APIPath + "/internship-application"

// Positions open for applications.
var Positions = []string{ //nolint:gochecknoglobals
	"frontend", "backend", "fullstack", "mobile", "data-science",
	"ai", "design", "marketing", "content",
}

// Service is the internship handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	notifier  mail.Notifier
	validator *validator.Validate
}

// Handler is the internship handler.
var Handler = Service{}

type applyRequest struct {
	FirstName    string `json:"firstName"    validate:"required,max=100"`
	LastName     string `json:"lastName"     validate:"required,max=100"`
	Email        string `json:"email"        validate:"required,email,max=255"`
	Phone        string `json:"phone"        validate:"required,min=7,max=32"`
	University   string `json:"university"   validate:"required,max=200"`
	Department   string `json:"department"   validate:"required,max=200"`
	Grade        int    `json:"grade"        validate:"required,min=1,max=6"`
	Position     string `json:"position"     validate:"required,position"`
	Motivation   string `json:"motivation"   validate:"required,min=50,max=5000"`
	CVURL        string `json:"cvUrl"        validate:"omitempty,url,max=500"`
	PortfolioURL string `json:"portfolioUrl" validate:"omitempty,url,max=500"`
	Lang         string `json:"lang"`
}

type statusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Lang   string `json:"lang"`
}

// Init registers the application routes. Reading and reviewing needs an admin.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, notifier mail.Notifier) {
	if app == nil || cfg == nil || db == nil || notifier == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.notifier = notifier
	s.validator = newValidator()

	app.Post(Path, s.Apply)
	app.Get(Path, authmw.RequireAdmin, s.Get)
	app.Patch(Path, authmw.RequireAdmin, s.UpdateStatus)
	app.Delete(Path, authmw.RequireAdmin, s.Delete)
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		return slices.Contains(Positions, fl.Field().String())
	})

	return v
}

// Apply stores a new application and emails the applicant and the admins.
func (s *Service) Apply(c *fiber.Ctx) error {
	var in applyRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	trim(&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.University,
		&in.Department, &in.Position, &in.Motivation, &in.CVURL, &in.PortfolioURL)

	if err := s.validator.Struct(in); err != nil {
		return handler.FailMessage(c, fiber.StatusBadRequest, i18n.T(lang, i18n.ApplicationInvalid)+failedField(err))
	}

	a := models.InternshipApplication{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		University:   in.University,
		Department:   in.Department,
		Grade:        in.Grade,
		Position:     in.Position,
		Motivation:   in.Motivation,
		CVURL:        in.CVURL,
		PortfolioURL: in.PortfolioURL,
		Status:       models.ApplicationPending,
		Lang:         string(lang),
	}

	if err := internship.Create(s.db, &a); err != nil {
		log.Error().Err(err).Msg("failed to save internship application")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	ctx := c.UserContext()
	data := applicationData(&a)

	_, errApplicant := s.notifier.Send(ctx, mail.InternshipConfirmation, lang, []string{a.Email}, data)
	if errApplicant != nil {
		log.Warn().Err(errApplicant).Str("application_id", a.ID).Msg("internship confirmation not sent")
	}

	_, errAdmin := s.notifier.NotifyAdmins(ctx, mail.InternshipAdmin, lang, data)
	if errAdmin != nil {
		log.Warn().Err(errAdmin).Str("application_id", a.ID).Msg("internship admin notice not sent")
	}

	log.Info().Str("application_id", a.ID).Str("position", a.Position).Msg("internship application received")

	return c.JSON(fiber.Map{
		"success":       true,
		"applicationId": a.ID,
		"emailsSent": fiber.Map{
			"applicant": errApplicant == nil,
			"admin":     errAdmin == nil,
		},
	})
}

// Get returns one application by id or the list, optionally filtered by status.
func (s *Service) Get(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	if id := strings.TrimSpace(c.Query("id")); id != "" {
		a, err := internship.GetByID(s.db, id)
		if errors.Is(err, internship.ErrApplicationNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, lang, i18n.ApplicationMissing)
		}

		if err != nil {
			log.Error().Err(err).Str("application_id", id).Msg("failed to load internship application")
			return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
		}

		return c.JSON(fiber.Map{"success": true, "data": a})
	}

	status := models.ApplicationStatus(strings.TrimSpace(c.Query("status")))
	if status != "" && !status.Valid() {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.StatusInvalid)
	}

	list, err := internship.List(s.db, status)
	if err != nil {
		log.Error().Err(err).Msg("failed to list internship applications")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

// UpdateStatus moves an application to a new status and tells the applicant.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	var in statusRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	status := models.ApplicationStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.StatusInvalid)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.InvalidRequest)
	}

	a, err := internship.UpdateStatus(s.db, id, status)
	if errors.Is(err, internship.ErrApplicationNotFound) {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.ApplicationMissing)
	}

	if err != nil {
		log.Error().Err(err).Str("application_id", id).Msg("failed to update internship application")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	applicantLang, ok := i18n.Parse(a.Lang)
	if !ok {
		applicantLang = lang
	}

	_, err = s.notifier.Send(c.UserContext(), mail.InternshipStatus, applicantLang, []string{a.Email}, applicationData(a))
	if err != nil {
		log.Warn().Err(err).Str("application_id", a.ID).Msg("internship status email not sent")
	}

	log.Info().Str("application_id", a.ID).Str("status", string(status)).
		Uint64("admin_id", authmw.CurrentProfile(c).ID).Msg("internship application status changed")

	return c.JSON(fiber.Map{"success": true, "data": a, "emailSent": err == nil})
}

// Delete removes an application.
func (s *Service) Delete(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.InvalidRequest)
	}

	err := internship.Delete(s.db, id)
	if errors.Is(err, internship.ErrApplicationNotFound) {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.ApplicationMissing)
	}

	if err != nil {
		log.Error().Err(err).Str("application_id", id).Msg("failed to delete internship application")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	return c.JSON(fiber.Map{"success": true})
}

func applicationData(a *models.InternshipApplication) map[string]any {
	return map[string]any{
		"application_id": a.ID,
		"first_name":     a.FirstName,
		"last_name":      a.LastName,
		"email":          a.Email,
		"phone":          a.Phone,
		"university":     a.University,
		"department":     a.Department,
		"grade":          a.Grade,
		"position":       a.Position,
		"motivation":     a.Motivation,
		"cv_url":         a.CVURL,
		"portfolio_url":  a.PortfolioURL,
		"status":         string(a.Status),
	}
}

func failedField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}

	return ""
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
