// Package discountcodes lets admins manage discount codes and visitors check them.
package discountcodes

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/codegen"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/discount"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/web/handler"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
)

const (
	// AdminPath of the admin endpoints.
	AdminPath = handler.APIPath + "/admin/discount-codes"
	// ValidatePath of the public check.
	ValidatePath = handler.APIPath + "/discount-codes/validate"

	maxPercentage = 100
)

var codePattern = regexp.MustCompile(`^[A-Z0-9-]{3,32}$`)

// Service is the discount codes handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
	now func() time.Time
}

// Handler is the discount codes handler.
var Handler = Service{}

type createRequest struct {
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	DiscountAmount float64 `json:"discount_amount"`
	DiscountType   string  `json:"discount_type"`
	MaxUses        *int    `json:"max_uses"`
	ValidFrom      *Date   `json:"valid_from"`
	ValidUntil     *Date   `json:"valid_until"`
	IsActive       *bool   `json:"is_active"`
	Lang           string  `json:"lang"`
}

type validateRequest struct {
	Code string `json:"code"`
	Lang string `json:"lang"`
}

// Init registers the admin and public routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	if s.now == nil {
		s.now = time.Now
	}

	admin := app.Group(AdminPath, authmw.RequireAdmin)
	admin.Get("", s.List)
	admin.Post("", s.Create)
	admin.Delete("/:id", s.Delete)

	app.Post(ValidatePath, s.Validate)
}

// List returns every discount code.
func (s *Service) List(c *fiber.Ctx) error {
	codes, err := discount.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list discount codes")
		return handler.Fail(c, fiber.StatusInternalServerError, handler.Lang(c), i18n.InternalError)
	}

	return c.JSON(fiber.Map{"success": true, "data": codes})
}

// Create adds a discount code, generating one when the code is empty.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	d, key := s.build(&in)
	if key != "" {
		return handler.Fail(c, fiber.StatusBadRequest, lang, key)
	}

	d.CreatedBy = authmw.CurrentProfile(c).ID

	err := discount.Create(s.db, d)
	if errors.Is(err, discount.ErrCodeExists) {
		return handler.Fail(c, fiber.StatusConflict, lang, i18n.CodeExists)
	}

	if err != nil {
		log.Error().Err(err).Str("code", d.Code).Msg("failed to create discount code")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	log.Info().Str("code", d.Code).Uint64("admin_id", d.CreatedBy).Msg("discount code created")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": d})
}

func (s *Service) build(in *createRequest) (*models.DiscountCode, i18n.Key) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		generated, err := codegen.DiscountCode()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate discount code")
			return nil, i18n.InternalError
		}

		code = generated
	}

	if !codePattern.MatchString(code) {
		return nil, i18n.CodeInvalid
	}

	typ := models.DiscountType(strings.ToLower(strings.TrimSpace(in.DiscountType)))
	if typ != models.DiscountPercentage && typ != models.DiscountFixed {
		return nil, i18n.TypeInvalid
	}

	if in.DiscountAmount <= 0 || (typ == models.DiscountPercentage && in.DiscountAmount > maxPercentage) {
		return nil, i18n.AmountInvalid
	}

	if in.MaxUses != nil && *in.MaxUses <= 0 {
		return nil, i18n.InvalidRequest
	}

	from, until := in.ValidFrom.Time(), in.ValidUntil.Time()
	if from != nil && until != nil && !until.After(*from) {
		return nil, i18n.DateRangeInvalid
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.DiscountCode{
		Code:           code,
		Description:    strings.TrimSpace(in.Description),
		DiscountAmount: in.DiscountAmount,
		DiscountType:   typ,
		MaxUses:        in.MaxUses,
		ValidFrom:      from,
		ValidUntil:     until,
		Active:         active,
	}, ""
}

// Delete removes the code with the id.
func (s *Service) Delete(c *fiber.Ctx) error {
	lang := handler.Lang(c)

	id, ok := handler.ParseID(c.Params("id"))
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.InvalidRequest)
	}

	err := discount.Delete(s.db, id)
	if errors.Is(err, discount.ErrCodeNotFound) {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.CodeNotFound)
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete discount code")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Validate tells a visitor whether a code can be redeemed now.
func (s *Service) Validate(c *fiber.Ctx) error {
	var in validateRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if !codePattern.MatchString(code) {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.CodeInvalid)
	}

	d, err := discount.GetByCode(s.db, code)
	if err != nil && !errors.Is(err, discount.ErrCodeNotFound) {
		log.Error().Err(err).Str("code", code).Msg("failed to look up discount code")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	if d == nil || !d.Redeemable(s.now()) {
		return handler.Fail(c, fiber.StatusNotFound, lang, i18n.CodeNotFound)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"code":            d.Code,
			"discount_amount": d.DiscountAmount,
			"discount_type":   d.DiscountType,
		},
	})
}
