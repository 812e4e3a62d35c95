package api

import (
	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/middleware"
)

type Server struct {
	auth       *AuthHandler
	tenant     *TenantHandler
	job        *JobHandler
	quote      *QuoteHandler
	tenantMw   *middleware.TenantMiddleware
	sessionMw  *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
}

func NewServer(
	authHandler *AuthHandler,
	tenantHandler *TenantHandler,
	jobHandler *JobHandler,
	quoteHandler *QuoteHandler,
	tenantMw *middleware.TenantMiddleware,
	sessionMw *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
) *Server {
	return &Server{
		auth:       authHandler,
		tenant:     tenantHandler,
		job:        jobHandler,
		quote:      quoteHandler,
		tenantMw:   tenantMw,
		sessionMw:  sessionMw,
		rateLimit:  rateLimit,
		validation: validation,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup, globalRateLimit int) {
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.ValidateRequestSize(1 * 1024 * 1024)) // 1MB max
	api.Use(s.validation.ValidateContentType("application/json"))
	api.Use(s.rateLimit.GlobalRateLimit(globalRateLimit))

	// Tenant resolution first (subdomain, then X-Tenant header); the session
	// token claim covers requests with neither.
	api.Use(s.tenantMw.ResolveTenant())

	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", s.tenantMw.RequireTenant(), s.auth.Login)
			authRoutes.GET("/session", s.sessionMw.RequireSession(), s.auth.Session)
		}

		admin := api.Group("", s.sessionMw.RequireSession(), s.rateLimit.TenantRateLimit(), s.sessionMw.RequireRole("admin"))
		{
			tenants := admin.Group("/tenants")
			{
				tenants.POST("", s.tenant.CreateTenant)
				tenants.GET("", s.tenant.ListTenants)
				tenants.PATCH("/:slug", s.tenant.UpdateTenant)
				tenants.POST("/:slug/suspend", s.tenant.SuspendTenant)
				tenants.POST("/:slug/reactivate", s.tenant.ReactivateTenant)
			}

			jobs := admin.Group("/jobs")
			{
				jobs.GET("", s.job.ListExecutions)
				jobs.GET("/stuck", s.job.ListStuck)
			}
		}

		tq := api.Group("/quotes", s.sessionMw.RequireSession(), s.rateLimit.TenantRateLimit(), s.sessionMw.RequireApp("tq"))
		{
			tq.POST("", s.quote.CreateQuote)
			tq.GET("", s.quote.ListQuotes)
			tq.GET("/:id", s.quote.GetQuote)
			tq.POST("/audio", s.quote.RegisterAudio)
		}
	}
}

// SetupPublicRoutes mounts the unauthenticated public-link surface. It still
// resolves the tenant (subdomain or header) so the lookup is schema-scoped.
func (s *Server) SetupPublicRoutes(public *gin.RouterGroup) {
	public.Use(s.tenantMw.ResolveTenant(), s.tenantMw.RequireTenant())
	public.GET("/quotes/:token", s.quote.GetPublicQuote)
}
