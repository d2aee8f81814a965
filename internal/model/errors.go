package model

import "errors"

// Common errors used across the application
var (
	// ErrPlayerNotFound indicates no record matched the identifier
	ErrPlayerNotFound = errors.New("player not found")

	// ErrMissingIdentifier indicates no usable identifier could be
	// derived from the request
	ErrMissingIdentifier = errors.New("missing identifier")

	// ErrStoreUnavailable indicates the backing store failed
	ErrStoreUnavailable = errors.New("store unavailable")
)
