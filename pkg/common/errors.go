package common

import "errors"

// Error taxonomy shared by the stores and the API layer. Callers match
// with errors.Is; everything else is treated as internal.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
