package daemon

import "errors"

// ErrConfigNil is returned by New without a configuration.
var ErrConfigNil = errors.New("config is nil")
