package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/api/dto"
	"github.com/transquote/platform-api/internal/directory"
	"github.com/transquote/platform-api/internal/domain"
)

//go:generate mockery --name TenantDirectory --output ../mocks
type TenantDirectory interface {
	Create(ctx context.Context, slug, name, locale string, allowedApps []string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	Suspend(ctx context.Context, slug string) (*domain.Tenant, error)
	Reactivate(ctx context.Context, slug string) (*domain.Tenant, error)
	UpdateSettings(ctx context.Context, slug, locale string, allowedApps []string) (*domain.Tenant, error)
}

type TenantHandler struct {
	*BaseHandler
	directory TenantDirectory
}

func NewTenantHandler(dir TenantDirectory) *TenantHandler {
	return &TenantHandler{directory: dir}
}

// CreateTenant provisions a new tenant: directory row, schema, tables.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, err := h.directory.Create(h.RequestCtx(c), req.Slug, req.Name, req.Locale, req.AllowedApplications)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		case errors.Is(err, directory.ErrTenantExists):
			c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewTenantResponse(tenant))
}

// ListTenants returns all tenants, suspended included (admin view).
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.directory.List(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = dto.NewTenantResponse(&tenants[i])
	}
	c.JSON(http.StatusOK, responses)
}

// SuspendTenant marks a tenant suspended; its tokens stop validating and its
// slug stops resolving within one cache TTL.
func (h *TenantHandler) SuspendTenant(c *gin.Context) {
	h.setStatus(c, h.directory.Suspend)
}

// ReactivateTenant marks a suspended tenant active again.
func (h *TenantHandler) ReactivateTenant(c *gin.Context) {
	h.setStatus(c, h.directory.Reactivate)
}

// UpdateTenant changes locale and/or allowed applications.
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, err := h.directory.UpdateSettings(h.RequestCtx(c), c.Param("slug"), req.Locale, req.AllowedApplications)
	if err != nil {
		if errors.Is(err, directory.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewTenantResponse(tenant))
}

func (h *TenantHandler) setStatus(c *gin.Context, op func(ctx context.Context, slug string) (*domain.Tenant, error)) {
	tenant, err := op(h.RequestCtx(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, directory.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewTenantResponse(tenant))
}
