package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike; login failures must not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTenantInactive     = errors.New("tenant is not active")
	ErrUserInactive       = errors.New("user is not active")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTenantMismatch means the token verifies but its tenant no longer
	// resolves as active (suspended after issuance).
	ErrTenantMismatch = errors.New("token tenant no longer active")
)
