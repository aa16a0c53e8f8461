// Package controller holds errors shared by the entity controllers below it.
package controller

import "errors"

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")
