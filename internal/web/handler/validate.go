package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/unilabvision/myuni/internal/i18n"
)

// ValidationKey maps the first failed field of a validator error to its
// message key. Fields missing from keys yield fallback.
func ValidationKey(err error, keys map[string]i18n.Key, fallback i18n.Key) i18n.Key {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}

	if key, ok := keys[verrs[0].StructField()]; ok {
		return key
	}

	return fallback
}
