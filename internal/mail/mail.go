// Package mail sends the transactional emails of the platform. Messages are
// rendered from embedded liquid templates and delivered through an SMTP relay
// or AWS SES.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/unilabvision/myuni/internal/i18n"
)

var (
	// ErrNoRecipients is returned when a message has no recipient.
	ErrNoRecipients = errors.New("mail: no recipients")

	sentTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "Number of transactional emails, by template and result.",
		},
		[]string{"template", "result"},
	)
)

// Message is a rendered email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a rendered message and returns the transport message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// Notifier is what request handlers use to send templated mail.
type Notifier interface {
	// Send renders tmpl in lang and delivers it to the recipients.
	Send(ctx context.Context, tmpl Template, lang i18n.Lang, to []string, data map[string]any) (string, error)
	// NotifyAdmins sends tmpl to the configured admin recipients.
	NotifyAdmins(ctx context.Context, tmpl Template, lang i18n.Lang, data map[string]any) (string, error)
}

// Mailer implements Notifier on top of a Sender.
type Mailer struct {
	sender    Sender
	templates *Templates
	from      string
	admins    []string
	timeout   time.Duration
}

// Options configure a Mailer.
type Options struct {
	From            string
	FromName        string
	AdminRecipients []string
	Timeout         time.Duration
}

// NewMailer creates a Mailer.
func NewMailer(sender Sender, templates *Templates, opts Options) *Mailer {
	from := opts.From
	if opts.FromName != "" && from != "" {
		from = fmt.Sprintf("%s <%s>", opts.FromName, opts.From)
	}

	return &Mailer{
		sender:    sender,
		templates: templates,
		from:      from,
		admins:    opts.AdminRecipients,
		timeout:   opts.Timeout,
	}
}

// Send implements Notifier.
func (m *Mailer) Send(
	ctx context.Context,
	tmpl Template,
	lang i18n.Lang,
	to []string,
	data map[string]any,
) (string, error) {
	id, err := m.send(ctx, tmpl, lang, to, data)
	if err != nil {
		sentTotal.WithLabelValues(string(tmpl), "error").Inc()
		log.Error().Err(err).Str("template", string(tmpl)).Int("recipients", len(to)).Msg("failed to send email")

		return "", err
	}

	sentTotal.WithLabelValues(string(tmpl), "ok").Inc()
	log.Debug().Str("template", string(tmpl)).Str("message_id", id).Msg("email sent")

	return id, nil
}

// NotifyAdmins implements Notifier.
func (m *Mailer) NotifyAdmins(ctx context.Context, tmpl Template, lang i18n.Lang, data map[string]any) (string, error) {
	return m.Send(ctx, tmpl, lang, m.admins, data)
}

func (m *Mailer) send(
	ctx context.Context,
	tmpl Template,
	lang i18n.Lang,
	to []string,
	data map[string]any,
) (string, error) {
	recipients := make([]string, 0, len(to))

	for _, r := range to {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}

	if len(recipients) == 0 {
		return "", ErrNoRecipients
	}

	subject, body, err := m.templates.Render(tmpl, lang, data)
	if err != nil {
		return "", err
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	return m.sender.Send(ctx, &Message{
		From:    m.from,
		To:      recipients,
		Subject: subject,
		HTML:    body,
	})
}
