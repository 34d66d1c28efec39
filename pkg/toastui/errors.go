package toastui

import "errors"

var (
	// ErrNoManager is returned when a request reaches a toast route without
	// passing through the session middleware.
	ErrNoManager = errors.New("toastui: no toast manager in request context")

	// ErrInvalidPayload is returned when a request body cannot be decoded.
	ErrInvalidPayload = errors.New("toastui: invalid toast payload")
)
