package forms

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
)

// FieldError reports the first field of a submission that failed a rule.
type FieldError struct {
	Key   i18n.Key
	Label string
}

func (e *FieldError) Error() string {
	return string(e.Key) + ": " + e.Label
}

// Message returns the localized message naming the field.
func (e *FieldError) Message(lang i18n.Lang) string {
	return i18n.T(lang, e.Key) + e.Label
}

// ValidateFields checks data against the field definitions of a form.
func ValidateFields(v *validator.Validate, fields []models.FormField, data map[string]any) *FieldError {
	for _, f := range fields {
		value, present := lookup(data, f.Name)
		if !present {
			if f.Required {
				return &FieldError{Key: i18n.FormFieldRequired, Label: label(f)}
			}

			continue
		}

		if !valid(v, f, value) {
			return &FieldError{Key: i18n.FormFieldInvalid, Label: label(f)}
		}
	}

	return nil
}

// SubmitterEmail returns the value of the first email field, if any.
func SubmitterEmail(fields []models.FormField, data map[string]any) string {
	for _, f := range fields {
		if f.Type != models.FieldEmail {
			continue
		}

		if s, ok := data[f.Name].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	return ""
}

func lookup(data map[string]any, name string) (any, bool) {
	value, ok := data[name]
	if !ok || value == nil {
		return nil, false
	}

	switch t := value.(type) {
	case string:
		return t, strings.TrimSpace(t) != ""
	case []any:
		return t, len(t) > 0
	case bool:
		return t, t
	default:
		return t, true
	}
}

func valid(v *validator.Validate, f models.FormField, value any) bool {
	switch f.Type {
	case models.FieldEmail:
		s, ok := value.(string)
		return ok && v.Var(strings.TrimSpace(s), "email") == nil
	case models.FieldSelect, models.FieldRadio:
		s, ok := value.(string)
		return ok && (len(f.Options) == 0 || slices.Contains(f.Options, s))
	case models.FieldCheckbox:
		return validChoices(f.Options, value)
	case models.FieldNumber:
		n, ok := number(value)
		if !ok {
			return false
		}

		return (f.Min == nil || n >= *f.Min) && (f.Max == nil || n <= *f.Max)
	case models.FieldText, models.FieldTextarea, models.FieldPhone:
		s, ok := value.(string)
		return ok && (f.MaxLength <= 0 || utf8.RuneCountInString(s) <= f.MaxLength)
	default:
		return true
	}
}

func validChoices(options []string, value any) bool {
	switch t := value.(type) {
	case bool:
		return true
	case string:
		return len(options) == 0 || slices.Contains(options, t)
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok || (len(options) > 0 && !slices.Contains(options, s)) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func number(value any) (float64, bool) {
	switch t := value.(type) {
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func label(f models.FormField) string {
	if f.Label != "" {
		return f.Label
	}

	return f.Name
}

// display renders a submitted value for the notification email.
func display(value any) string {
	switch t := value.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, display(item))
		}

		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
