// Package chat answers learner questions through a generative completion
// service. A request is validated, turned into a prompt, generated with a
// bounded retry and cleaned up before it is returned.
package chat

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
)

// DefaultMaxAttempts is the number of completion calls per request.
const DefaultMaxAttempts = 3

var (
	attemptsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "chat_completion_attempts_total",
			Help: "Number of completion calls, by result.",
		},
		[]string{"result"},
	)
	repliesTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Number of chat requests, by outcome kind.",
		},
		[]string{"outcome"},
	)
)

// Completion generates text for a prompt.
type Completion interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LessonFinder looks up the lesson a question refers to.
type LessonFinder interface {
	FindLesson(ctx context.Context, id string) (*models.Lesson, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Request is one chat question.
type Request struct {
	Message  string
	LessonID string
	History  []Turn
	Lang     i18n.Lang
}

// Reply is a generated answer.
type Reply struct {
	Message       string
	LessonContext *LessonContext
}

// Options configure a Pipeline.
type Options struct {
	MaxAttempts int
	Timeout     time.Duration // per completion call, 0 for none
	BaseDelay   time.Duration // first backoff wait, doubled on every retry
	Sleep       Sleeper
}

// Pipeline produces replies.
type Pipeline struct {
	completion Completion
	lessons    LessonFinder
	opts       Options
}

// New creates a Pipeline. lessons may be nil.
func New(completion Completion, lessons LessonFinder, opts Options) *Pipeline {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}

	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}

	return &Pipeline{completion: completion, lessons: lessons, opts: opts}
}

// Reply answers req.
func (p *Pipeline) Reply(ctx context.Context, req Request) (*Reply, error) {
	if p == nil || p.completion == nil {
		return nil, ErrNoCompletion
	}

	lesson := p.lookupLesson(ctx, req.LessonID)
	prompt := BuildPrompt(req.Lang, lesson, req.History, req.Message)

	text, err := p.generate(ctx, prompt)
	if err != nil {
		repliesTotal.WithLabelValues(KindOf(err).String()).Inc()

		return nil, err
	}

	repliesTotal.WithLabelValues("ok").Inc()

	return &Reply{Message: text, LessonContext: lesson}, nil
}

func (p *Pipeline) lookupLesson(ctx context.Context, id string) *LessonContext {
	id = strings.TrimSpace(id)
	if id == "" || p.lessons == nil {
		return nil
	}

	l, err := p.lessons.FindLesson(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("lesson_id", id).Msg("lesson lookup failed, answering without context")

		return nil
	}

	return NewLessonContext(l)
}

// generate calls the completion service up to MaxAttempts times and waits
// BaseDelay * 2^(n-1) after a failed attempt n that is not the last.
func (p *Pipeline) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		text, err := p.attempt(ctx, prompt)
		if err == nil {
			attemptsTotal.WithLabelValues("ok").Inc()

			return text, nil
		}

		attemptsTotal.WithLabelValues("error").Inc()

		lastErr = err

		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", p.opts.MaxAttempts).
			Msg("completion attempt failed")

		if ctx.Err() != nil {
			return "", NewError(KindTimeout, lastErr)
		}

		if attempt == p.opts.MaxAttempts {
			break
		}

		delay := p.opts.BaseDelay << (attempt - 1)
		if err = p.opts.Sleep(ctx, delay); err != nil {
			return "", NewError(KindTimeout, lastErr)
		}
	}

	return "", lastErr
}

func (p *Pipeline) attempt(ctx context.Context, prompt string) (string, error) {
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	raw, err := p.completion.Complete(ctx, prompt)
	if err != nil {
		if KindOf(err) == KindUnknown && errors.Is(err, context.DeadlineExceeded) {
			return "", NewError(KindTimeout, err)
		}

		return "", err
	}

	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyResponse
	}

	return ValidateOutput(Sanitize(raw))
}

// Fallback returns one of the fixed fallback replies for lang.
func Fallback(lang i18n.Lang) string {
	options := i18n.ChatFallbacks(lang)
	if len(options) == 0 {
		return ""
	}

	return options[rand.IntN(len(options))] //nolint:gosec
}
