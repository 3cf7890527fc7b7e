package storage

import "errors"

// Validation errors.
var (
	ErrEmptyString = errors.New("string parameter cannot be empty")
)
