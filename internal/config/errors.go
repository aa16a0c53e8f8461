package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is neither mysql nor postgres.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql or postgres")

	// ErrUnknownMailTransport error if config mail.transport is neither smtp nor ses.
	ErrUnknownMailTransport = errors.New("toml config mail.transport must be smtp or ses")

	// ErrUnknownRateLimitBackend error if config rateLimit.backend is neither memory nor redis.
	ErrUnknownRateLimitBackend = errors.New("toml config rateLimit.backend must be memory or redis")
)
