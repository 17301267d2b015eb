package service

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers translate these into
// redirects with a flash notice, a 404, or a 403, depending on the route.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrEmailNotFound      = errors.New("email not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("reset token expired")
	ErrTokenInvalid       = errors.New("reset token invalid")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidInput       = errors.New("missing or invalid field")
	ErrNotFound           = errors.New("item not found")
	ErrForbidden          = errors.New("not allowed")
)
