// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates missing or malformed input fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSignature indicates the Telegram initData signature did not verify.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnauthorized indicates a missing, malformed, or expired bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)
