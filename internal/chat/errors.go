package chat

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/unilabvision/myuni/internal/i18n"
)

// Kind classifies a completion failure.
type Kind int

// Failure kinds reported by completion services.
const (
	KindUnknown Kind = iota
	KindSafety
	KindQuota
	KindTimeout
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindSafety:
		return "safety"
	case KindQuota:
		return "quota"
	case KindTimeout:
		return "timeout"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// HTTPStatus is the response status for a generation failure of kind k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindSafety:
		return fiber.StatusBadRequest
	case KindQuota:
		return fiber.StatusTooManyRequests
	case KindTimeout:
		return fiber.StatusRequestTimeout
	case KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

var (
	// ErrNoCompletion is returned when the pipeline has no completion service.
	ErrNoCompletion = errors.New("chat: completion service not configured")
	// ErrEmptyResponse is returned for an empty completion.
	ErrEmptyResponse = errors.New("chat: empty response")
	// ErrResponseTooShort is returned when a cleaned completion is under the minimum length.
	ErrResponseTooShort = errors.New("chat: response too short")
)

// Error is a completion failure tagged with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("completion failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError tags err with kind.
func NewError(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind carried by err, KindUnknown when untagged.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// ValidationError rejects a user message before any completion call.
type ValidationError struct {
	Key    i18n.Key
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid message: " + e.Reason
}
