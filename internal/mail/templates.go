package mail

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/unilabvision/myuni/internal/i18n"
)

// Template names an embedded email template.
type Template string

// Embedded templates.
const (
	NewsletterWelcome      Template = "newsletter_welcome"
	NewsletterAdmin        Template = "newsletter_admin"
	FormNotification       Template = "form_notification"
	FormConfirmation       Template = "form_confirmation"
	InternshipConfirmation Template = "internship_confirmation"
	InternshipAdmin        Template = "internship_admin"
	InternshipStatus       Template = "internship_status"
	Certificate            Template = "certificate"
)

// subjectSeparator splits the subject line from the HTML body in a template file.
const subjectSeparator = "\n---\n"

var (
	//go:embed templates/*.liquid
	embeddedTemplates embed.FS

	// ErrUnknownTemplate is returned for a template name without a file.
	ErrUnknownTemplate = errors.New("mail: unknown template")
	// ErrMalformedTemplate is returned when a template has no subject separator.
	ErrMalformedTemplate = errors.New("mail: template has no subject separator")
)

// Templates renders the embedded liquid templates. Parsed templates are cached.
type Templates struct {
	engine  *liquid.Engine
	baseURL string
	site    string
	cache   sync.Map // map[Template]*liquid.Template
}

// NewTemplates creates a renderer. baseURL and site are available to every
// template as base_url and site.
func NewTemplates(baseURL, site string) *Templates {
	engine := liquid.NewEngine()

	// Default value filter: {{ first_name | default_to: "Friend" }}
	engine.RegisterFilter("default_to", func(value any, fallback string) any {
		if value == nil || fmt.Sprint(value) == "" {
			return fallback
		}

		return value
	})

	return &Templates{engine: engine, baseURL: strings.TrimRight(baseURL, "/"), site: site}
}

// Render returns the subject and HTML body of tmpl in lang.
func (t *Templates) Render(tmpl Template, lang i18n.Lang, data map[string]any) (string, string, error) {
	parsed, err := t.parse(tmpl)
	if err != nil {
		return "", "", err
	}

	bindings := make(map[string]any, len(data)+3)
	for k, v := range data {
		bindings[k] = v
	}

	bindings["lang"] = string(lang)
	bindings["base_url"] = t.baseURL
	bindings["site"] = t.site

	out, renderErr := parsed.RenderString(bindings)
	if renderErr != nil {
		return "", "", fmt.Errorf("render %s: %w", tmpl, renderErr)
	}

	subject, body, ok := strings.Cut(out, subjectSeparator)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedTemplate, tmpl)
	}

	return strings.TrimSpace(subject), strings.TrimSpace(body), nil
}

func (t *Templates) parse(tmpl Template) (*liquid.Template, error) {
	if cached, ok := t.cache.Load(tmpl); ok {
		return cached.(*liquid.Template), nil //nolint:forcetypeassert
	}

	src, err := embeddedTemplates.ReadFile("templates/" + string(tmpl) + ".liquid")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, tmpl)
	}

	parsed, parseErr := t.engine.ParseTemplate(src)
	if parseErr != nil {
		return nil, fmt.Errorf("parse %s: %w", tmpl, parseErr)
	}

	t.cache.Store(tmpl, parsed)

	return parsed, nil
}
