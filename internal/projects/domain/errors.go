package domain

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrNotFound         = errors.New("project not found")
	ErrMalformedRecord  = errors.New("malformed project record")
	ErrInvalidForm      = errors.New("invalid project data")
)
