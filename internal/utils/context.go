package utils

import (
	"context"
	"errors"

	"github.com/transquote/platform-api/internal/auth"
	"github.com/transquote/platform-api/internal/domain"
)

type ContextKey string

const (
	SessionKey ContextKey = "session"
	TenantKey  ContextKey = "tenant"
)

var (
	ErrNoSessionInContext = errors.New("no session found in context")
	ErrInvalidSessionType = errors.New("invalid session type in context")
	ErrNoTenantInContext  = errors.New("no tenant found in context")
	ErrInvalidTenantType  = errors.New("invalid tenant type in context")
)

func GetSessionFromContext(c context.Context) (*auth.SessionContext, error) {
	value := c.Value(SessionKey)
	if value == nil {
		return nil, ErrNoSessionInContext
	}
	session, ok := value.(*auth.SessionContext)
	if !ok {
		return nil, ErrInvalidSessionType
	}
	return session, nil
}

func GetTenantFromContext(c context.Context) (*domain.Tenant, error) {
	value := c.Value(TenantKey)
	if value == nil {
		return nil, ErrNoTenantInContext
	}
	tenant, ok := value.(*domain.Tenant)
	if !ok {
		return nil, ErrInvalidTenantType
	}
	return tenant, nil
}
