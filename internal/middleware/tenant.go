package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/directory"
	"github.com/transquote/platform-api/internal/utils"
)

// TenantHeader is the explicit routing header, used by the admin console and
// internal callers that do not sit behind a tenant subdomain.
const TenantHeader = "X-Tenant"

type TenantMiddleware struct {
	directory  *directory.Directory
	baseDomain string
}

func NewTenantMiddleware(dir *directory.Directory, baseDomain string) *TenantMiddleware {
	return &TenantMiddleware{
		directory:  dir,
		baseDomain: baseDomain,
	}
}

// ResolveTenant resolves the request's tenant from the subdomain first, then
// the X-Tenant header, and attaches it to the context. Requests without
// either identifier pass through; the session middleware will still resolve
// the tenant from the token claim, which is last in the priority order.
func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := m.slugFromHost(c.Request.Host)
		if slug == "" {
			slug = strings.TrimSpace(c.GetHeader(TenantHeader))
		}
		if slug == "" {
			c.Next()
			return
		}

		tenant, err := m.directory.Resolve(c.Request.Context(), slug)
		if err != nil {
			// Suspended and unknown tenants answer identically.
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}

		c.Set(string(utils.TenantKey), tenant)
		c.Next()
	}
}

// RequireTenant rejects requests that reached a tenant-scoped route without a
// resolved tenant.
func (m *TenantMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(string(utils.TenantKey)); !exists {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		c.Next()
	}
}

// slugFromHost extracts the tenant slug from hosts of the form
// <slug>.<baseDomain>, ignoring ports and non-matching hosts.
func (m *TenantMiddleware) slugFromHost(host string) string {
	if m.baseDomain == "" {
		return ""
	}
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	suffix := "." + m.baseDomain
	if !strings.HasSuffix(host, suffix) {
		return ""
	}
	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
