package auth

import "errors"

// Authentication and authorization failures. The gate reports the specific
// kind; the login endpoint collapses its failures into ErrInvalidCredentials.
var (
	ErrMissingCredentials = errors.New("missing bearer credentials")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenExpired       = errors.New("token expired")
	ErrMalformedToken     = errors.New("malformed token")
	ErrUserNotFound       = errors.New("token subject not found")
	ErrForbidden          = errors.New("insufficient role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
