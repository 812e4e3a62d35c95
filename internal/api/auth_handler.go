package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/api/dto"
	"github.com/transquote/platform-api/internal/auth"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/utils"
)

//go:generate mockery --name AuthService --output ../mocks
type AuthService interface {
	Login(ctx context.Context, tenant *domain.Tenant, creds auth.Credentials) (*auth.LoginResult, error)
	Validate(ctx context.Context, token string) (*auth.SessionContext, error)
}

type AuthHandler struct {
	*BaseHandler
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates credentials against the request's tenant and returns a
// session token. Every credential failure answers with the identical 401
// body; the route never reveals whether the email exists, the password was
// wrong, or the account was disabled.
func (h *AuthHandler) Login(c *gin.Context) {
	tenant, err := utils.GetTenantFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: "tenant not found"})
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	result, err := h.service.Login(h.RequestCtx(c), tenant, auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials, auth.ErrTenantInactive, auth.ErrUserInactive:
			c.JSON(http.StatusUnauthorized, dto.Error{Error: "invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:       result.Token,
		User:        dto.NewUserResponse(result.User),
		AllowedApps: result.AllowedApps,
	})
}

// Session returns the validated session attached by the auth middleware.
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := utils.GetSessionFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "authentication required"})
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}
