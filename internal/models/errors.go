package models

import "errors"

// Failure modes shared across the store gateway, directory and ledger.
// Handlers translate these into user-facing replies; anything else is
// treated as internal.
var (
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrNotRegistered       = errors.New("user not registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrMalformedCommand    = errors.New("malformed command")
	ErrDuplicateOpenRecord = errors.New("open check-in already exists")
	ErrNoOpenRecord        = errors.New("no open check-in")
	ErrMalformedRow        = errors.New("malformed sheet row")
)
