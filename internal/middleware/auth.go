package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/auth"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/utils"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireSession validates the bearer token and attaches the session to the
// context. Every auth failure answers with the same generic 401 body; the
// distinction (expired, invalid, tenant mismatch) stays server-side.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		session, err := m.authService.Validate(c.Request.Context(), bearerToken[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		// When the route already resolved a tenant (subdomain or header),
		// the token must belong to it.
		if value, exists := c.Get(string(utils.TenantKey)); exists {
			if tenant, ok := value.(*domain.Tenant); ok && tenant.Slug != session.TenantSlug {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
				return
			}
		}

		c.Set(string(utils.SessionKey), session)
		c.Next()
	}
}

// RequireRole checks the session's role.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromGin(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if session.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireApp checks the session's allowed-application list.
func (m *AuthMiddleware) RequireApp(app string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromGin(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !session.AllowsApplication(app) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func sessionFromGin(c *gin.Context) *auth.SessionContext {
	value, exists := c.Get(string(utils.SessionKey))
	if !exists {
		return nil
	}
	session, ok := value.(*auth.SessionContext)
	if !ok {
		return nil
	}
	return session
}
