package sentinel

import "errors"

// Sentinel errors for storage facts. Stores and connection helpers wrap these so
// callers can tell a constraint violation from an unreachable backend without
// string matching.
//
// Field validation errors belong in pkg/validation.
var (
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
