package gate

import "errors"

// Sentinel errors for authorization failures.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnknownRole  = errors.New("unknown role")
)
