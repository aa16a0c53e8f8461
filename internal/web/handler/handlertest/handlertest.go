// Package handlertest holds helpers shared by the handler tests.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/web/handler"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
)

// NewApp returns a fiber app with the error handler and session loading of
// the real server.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler, BodyLimit: config.DefaultBodyLimit})
	app.Use(authmw.Sessions{}.Load)

	return app
}

// Config returns a configuration suitable for handler tests.
func Config() *config.Config {
	return &config.Config{
		Title: "MyUNI",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute, CookieName: authmw.DefaultCookieName},
		},
		Mail: config.Mail{AdminRecipients: []string{"admin@example.com"}},
	}
}

// Request describes a test request.
type Request struct {
	Method  string
	Target  string
	Body    any
	Session string
	Header  map[string]string
}

// Do performs the request and decodes the JSON response body into a map.
func Do(t *testing.T, app *fiber.App, r Request) (int, map[string]any) {
	t.Helper()

	status, raw := DoRaw(t, app, r)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))

	return status, out
}

// DoRaw performs the request and returns the raw response body.
func DoRaw(t *testing.T, app *fiber.App, r Request) (int, []byte) {
	t.Helper()

	var body io.Reader
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		require.NoError(t, err)

		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(r.Method, r.Target, body)
	if r.Body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	for k, v := range r.Header {
		req.Header.Set(k, v)
	}

	if r.Session != "" {
		req.AddCookie(&http.Cookie{Name: authmw.DefaultCookieName, Value: r.Session})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

// Sent is one email recorded by Notifier.
type Sent struct {
	Template mail.Template
	Lang     i18n.Lang
	To       []string
	Data     map[string]any
	Admin    bool
}

// Notifier records emails instead of sending them.
type Notifier struct {
	mu   sync.Mutex
	Sent []Sent
	// Err, when set, is returned for every email.
	Err error
	// FailTemplates fail only the listed templates.
	FailTemplates map[mail.Template]error
}

var _ mail.Notifier = (*Notifier)(nil)

// Send implements mail.Notifier.
func (n *Notifier) Send(
	_ context.Context,
	tmpl mail.Template,
	lang i18n.Lang,
	to []string,
	data map[string]any,
) (string, error) {
	return n.record(Sent{Template: tmpl, Lang: lang, To: to, Data: data})
}

// NotifyAdmins implements mail.Notifier.
func (n *Notifier) NotifyAdmins(_ context.Context, tmpl mail.Template, lang i18n.Lang, data map[string]any) (string, error) {
	return n.record(Sent{Template: tmpl, Lang: lang, Data: data, Admin: true})
}

func (n *Notifier) record(s Sent) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return "", n.Err
	}

	if err := n.FailTemplates[s.Template]; err != nil {
		return "", err
	}

	n.Sent = append(n.Sent, s)

	return "msg-" + string(s.Template), nil
}

// Templates returns the templates of the recorded emails in order.
func (n *Notifier) Templates() []mail.Template {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]mail.Template, 0, len(n.Sent))
	for _, s := range n.Sent {
		out = append(out, s.Template)
	}

	return out
}
