package ledger

import "errors"

// Sentinel errors returned by ledger operations. Handlers translate these to
// HTTP codes; jobs log them and continue.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)
