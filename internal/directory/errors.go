package directory

import "errors"

var (
	// ErrTenantNotFound covers both missing and suspended tenants so callers
	// cannot distinguish the two (no existence leak).
	ErrTenantNotFound = errors.New("tenant not found")
	ErrTenantExists   = errors.New("tenant already exists")
	ErrInvalidSlug    = errors.New("invalid tenant slug")
)
