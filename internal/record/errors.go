package record

import "errors"

// Errors returned by Service. Callers match them with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("record not found")
	ErrInvalidState = errors.New("record is not active")
)
