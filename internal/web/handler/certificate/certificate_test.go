package certificate

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/web/handler/handlertest"
	"github.com/unilabvision/myuni/internal/web/session/sessiontest"
)

func setup(t *testing.T) (*fiber.App, *handlertest.Notifier, string) {
	t.Helper()

	sessiontest.Init()

	sid, err := sessiontest.SignIn(models.Profile{ID: 7, Email: "user@example.com", Active: true})
	require.NoError(t, err)

	app := handlertest.NewApp()
	notifier := &handlertest.Notifier{}

	s := &Service{}
	s.Init(app, handlertest.Config(), notifier)

	return app, notifier, sid
}

func request() map[string]any {
	return map[string]any{
		"userEmail":         "user@example.com",
		"userName":          "Ece Demir",
		"certificateNumber": "MYUNI-2026-0042",
		"itemType":          "Workshop",
		"itemTitle":         "Go ile Mikroservisler",
		"certificateUrl":    "https://myunilab.net/certificates/MYUNI-2026-0042",
	}
}

func TestSend(t *testing.T) {
	app, notifier, sid := setup(t)

	status, body := handlertest.Do(t, app, handlertest.Request{Method: fiber.MethodPost, Target: Path, Body: request(), Session: sid})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "msg-certificate", body["messageId"])

	require.Len(t, notifier.Sent, 1)
	sent := notifier.Sent[0]
	assert.Equal(t, mail.Certificate, sent.Template)
	assert.Equal(t, []string{"user@example.com"}, sent.To)
	assert.Equal(t, "atölye", sent.Data["item_type_label"])
}

func TestSend_English(t *testing.T) {
	app, notifier, sid := setup(t)

	body := request()
	body["lang"] = "en"

	status, _ := handlertest.Do(t, app, handlertest.Request{Method: fiber.MethodPost, Target: Path, Body: body, Session: sid})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, i18n.EN, notifier.Sent[0].Lang)
	assert.Equal(t, "workshop", notifier.Sent[0].Data["item_type_label"])
}

func TestSend_RequiresUser(t *testing.T) {
	app, notifier, _ := setup(t)

	status, _ := handlertest.Do(t, app, handlertest.Request{Method: fiber.MethodPost, Target: Path, Body: request()})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Empty(t, notifier.Sent)
}

func TestSend_Invalid(t *testing.T) {
	tests := []struct {
		field string
		value any
		want  i18n.Key
	}{
		{"itemType", "bootcamp", i18n.ItemTypeInvalid},
		{"userEmail", "nope", i18n.InvalidEmail},
		{"certificateNumber", "", i18n.CertificateInvalid},
		{"certificateUrl", "not a url", i18n.CertificateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			app, notifier, sid := setup(t)

			body := request()
			body[tt.field] = tt.value

			status, out := handlertest.Do(t, app, handlertest.Request{Method: fiber.MethodPost, Target: Path, Body: body, Session: sid})
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, i18n.T(i18n.TR, tt.want), out["error"])
			assert.Empty(t, notifier.Sent)
		})
	}
}

func TestSend_Failure(t *testing.T) {
	app, notifier, sid := setup(t)
	notifier.Err = errors.New("smtp: 554 rejected")

	status, body := handlertest.Do(t, app, handlertest.Request{Method: fiber.MethodPost, Target: Path, Body: request(), Session: sid})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, i18n.T(i18n.TR, i18n.EmailSendFailed), body["error"])
}
