package domain

import "errors"

// ErrMissingColumn is returned when a source table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")
