package discountcodes

import (
	"encoding/json"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/dbtest"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/web/handler/handlertest"
	"github.com/unilabvision/myuni/internal/web/session/sessiontest"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	app     *fiber.App
	db      *gorm.DB
	admin   string
	adminID uint64
	user    string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	sessiontest.Init()

	f := &fixture{db: dbtest.New(t)}

	admin := models.Profile{Email: "admin@example.com", Role: models.RoleAdmin, Active: true}
	user := models.Profile{Email: "user@example.com", Role: models.RoleUser, Active: true}
	require.NoError(t, f.db.Create(&admin).Error)
	require.NoError(t, f.db.Create(&user).Error)

	f.adminID = admin.ID

	var err error
	f.admin, err = sessiontest.SignIn(admin)
	require.NoError(t, err)
	f.user, err = sessiontest.SignIn(user)
	require.NoError(t, err)

	f.app = handlertest.NewApp()

	s := &Service{now: func() time.Time { return now }}
	s.Init(f.app, handlertest.Config(), f.db)

	return f
}

func (f *fixture) create(t *testing.T, body map[string]any) (int, map[string]any) {
	t.Helper()

	return handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodPost, Target: AdminPath, Body: body, Session: f.admin})
}

func (f *fixture) validate(t *testing.T, code string) (int, map[string]any) {
	t.Helper()

	return handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodPost, Target: ValidatePath, Body: map[string]any{"code": code}})
}

func TestAuth(t *testing.T) {
	f := setup(t)

	status, _ := handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodGet, Target: AdminPath})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodPost, Target: AdminPath, Session: f.user, Body: map[string]any{}})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodDelete, Target: AdminPath + "/1", Session: f.user})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)

	status, body := f.create(t, map[string]any{
		"code":            " spring-25 ",
		"discount_amount": 25,
		"discount_type":   "percentage",
		"max_uses":        10,
		"valid_from":      "2026-05-01",
		"valid_until":     "2026-06-01T00:00:00Z",
		"description":     "Spring sale",
	})
	require.Equal(t, fiber.StatusCreated, status, body)

	data := body["data"].(map[string]any)
	assert.Equal(t, "SPRING-25", data["code"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, float64(f.adminID), data["created_by"])

	status, body = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodGet, Target: AdminPath, Session: f.admin})
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

func TestCreate_GeneratesCode(t *testing.T) {
	f := setup(t)

	status, body := f.create(t, map[string]any{"discount_amount": 50, "discount_type": "fixed", "is_active": false})
	require.Equal(t, fiber.StatusCreated, status, body)

	data := body["data"].(map[string]any)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`), data["code"])
	assert.Equal(t, false, data["is_active"])
}

func TestCreate_Duplicate(t *testing.T) {
	f := setup(t)

	body := map[string]any{"code": "WELCOME", "discount_amount": 10, "discount_type": "percentage"}

	status, _ := f.create(t, body)
	require.Equal(t, fiber.StatusCreated, status)

	body["code"] = "welcome"

	status, out := f.create(t, body)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, i18n.T(i18n.TR, i18n.CodeExists), out["error"])
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want i18n.Key
	}{
		{"short code", map[string]any{"code": "AB", "discount_amount": 5, "discount_type": "fixed"}, i18n.CodeInvalid},
		{"bad chars", map[string]any{"code": "NO_WAY", "discount_amount": 5, "discount_type": "fixed"}, i18n.CodeInvalid},
		{"bad type", map[string]any{"code": "ABC", "discount_amount": 5, "discount_type": "bogo"}, i18n.TypeInvalid},
		{"zero amount", map[string]any{"code": "ABC", "discount_amount": 0, "discount_type": "fixed"}, i18n.AmountInvalid},
		{"over 100 percent", map[string]any{"code": "ABC", "discount_amount": 101, "discount_type": "percentage"}, i18n.AmountInvalid},
		{"bad max uses", map[string]any{"code": "ABC", "discount_amount": 5, "discount_type": "fixed", "max_uses": 0}, i18n.InvalidRequest},
		{"reversed dates", map[string]any{
			"code": "ABC", "discount_amount": 5, "discount_type": "fixed",
			"valid_from": "2026-06-01", "valid_until": "2026-05-01",
		}, i18n.DateRangeInvalid},
		{"bad date", map[string]any{"code": "ABC", "discount_amount": 5, "discount_type": "fixed", "valid_from": "tomorrow"}, i18n.InvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			status, body := f.create(t, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, i18n.T(i18n.TR, tt.want), body["error"])
		})
	}
}

func TestDelete(t *testing.T) {
	f := setup(t)

	_, body := f.create(t, map[string]any{"code": "BYE", "discount_amount": 5, "discount_type": "fixed"})
	id := strconv.FormatFloat(body["data"].(map[string]any)["id"].(float64), 'f', 0, 64)

	status, _ := handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodDelete, Target: AdminPath + "/" + id, Session: f.admin})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodDelete, Target: AdminPath + "/" + id, Session: f.admin})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = handlertest.Do(t, f.app, handlertest.Request{Method: fiber.MethodDelete, Target: AdminPath + "/abc", Session: f.admin})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestValidate(t *testing.T) {
	f := setup(t)

	past := now.Add(-48 * time.Hour)
	maxUses := 1

	codes := []models.DiscountCode{
		{Code: "OPEN", DiscountAmount: 15, DiscountType: models.DiscountPercentage, Active: true},
		{Code: "OFF", DiscountAmount: 15, DiscountType: models.DiscountPercentage},
		{Code: "OLD", DiscountAmount: 15, DiscountType: models.DiscountFixed, Active: true, ValidUntil: &past},
		{Code: "USED", DiscountAmount: 15, DiscountType: models.DiscountFixed, Active: true, MaxUses: &maxUses, UsedCount: 1},
	}
	for i := range codes {
		require.NoError(t, f.db.Create(&codes[i]).Error)
	}

	status, body := f.validate(t, "open")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, map[string]any{"code": "OPEN", "discount_amount": float64(15), "discount_type": "percentage"}, body["data"])

	for _, code := range []string{"OFF", "OLD", "USED", "MISSING"} {
		status, _ = f.validate(t, code)
		assert.Equal(t, fiber.StatusNotFound, status, code)
	}

	status, _ = f.validate(t, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDate(t *testing.T) {
	var v struct {
		A *Date `json:"a"`
		B *Date `json:"b"`
		C *Date `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"2026-01-02","b":"2026-01-02T10:00:00+03:00","c":null}`), &v))
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), *v.A.Time())
	assert.True(t, v.B.Time().Equal(time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC)))
	assert.Nil(t, v.C.Time())

	assert.Error(t, json.Unmarshal([]byte(`{"a":5}`), &v))
}
