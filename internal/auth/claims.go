package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed JWT payload. Tokens are immutable once issued;
// there is no server-side revocation, logout is client-side discard.
type SessionClaims struct {
	UserID      string   `json:"user_id"`
	TenantID    uint     `json:"tenant_id"`
	TenantSlug  string   `json:"tenant_slug"`
	SchemaName  string   `json:"schema_name"`
	Role        string   `json:"role"`
	AllowedApps []string `json:"allowed_apps"`
	jwt.RegisteredClaims
}

// SessionContext is the validated session attached to a request.
type SessionContext struct {
	UserID      string    `json:"user_id"`
	TenantID    uint      `json:"tenant_id"`
	TenantSlug  string    `json:"tenant_slug"`
	SchemaName  string    `json:"schema_name"`
	Role        string    `json:"role"`
	AllowedApps []string  `json:"allowed_apps"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AllowsApplication reports whether the session grants access to the given
// application key.
func (s *SessionContext) AllowsApplication(app string) bool {
	for _, a := range s.AllowedApps {
		if a == app {
			return true
		}
	}
	return false
}
