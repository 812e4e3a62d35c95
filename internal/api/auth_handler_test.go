package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/transquote/platform-api/internal/api/dto"
	"github.com/transquote/platform-api/internal/auth"
	"github.com/transquote/platform-api/internal/domain"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	mockService *MockAuthService
	handler     *AuthHandler
	tenant      *domain.Tenant
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, tenant *domain.Tenant, creds auth.Credentials) (*auth.LoginResult, error) {
	args := m.Called(ctx, tenant, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) Validate(ctx context.Context, token string) (*auth.SessionContext, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.SessionContext), args.Error(1)
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockAuthService)
	s.handler = NewAuthHandler(s.mockService)
	s.tenant = &domain.Tenant{
		ID:                  1,
		Slug:                "clinic_abc",
		SchemaName:          "tenant_clinic_abc",
		Status:              domain.TenantStatusActive,
		AllowedApplications: []string{"hub", "tq"},
	}
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) loginRequest(body any) (*httptest.ResponseRecorder, *gin.Context) {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("tenant", s.tenant)
	return w, c
}

func (s *AuthHandlerTestSuite) TestLogin_Success() {
	// Arrange
	req := dto.LoginRequest{Email: "owner@clinic-abc.test", Password: "s3cret-pass"}
	result := &auth.LoginResult{
		User:        &domain.User{ID: "u1", Email: req.Email, Role: "admin"},
		Token:       "signed.jwt.token",
		AllowedApps: []string{"hub", "tq"},
	}

	s.mockService.On("Login", mock.Anything, s.tenant, auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}).Return(result, nil)

	w, c := s.loginRequest(req)

	// Act
	s.handler.Login(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("signed.jwt.token", response.Token)
	s.Equal("u1", response.User.ID)
	s.Equal([]string{"hub", "tq"}, response.AllowedApps)
	s.mockService.AssertExpectations(s.T())
}

func (s *AuthHandlerTestSuite) TestLogin_FailuresShareOneBody() {
	// Wrong password, unknown email and disabled account must produce the
	// exact same response.
	for _, svcErr := range []error{auth.ErrInvalidCredentials, auth.ErrTenantInactive, auth.ErrUserInactive} {
		mockService := new(MockAuthService)
		s.handler = NewAuthHandler(mockService)

		mockService.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, svcErr)

		w, c := s.loginRequest(dto.LoginRequest{Email: "owner@clinic-abc.test", Password: "nope"})
		s.handler.Login(c)

		s.Equal(http.StatusUnauthorized, w.Code)
		var response dto.Error
		s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
		s.Equal("invalid credentials", response.Error)
	}
}

func (s *AuthHandlerTestSuite) TestLogin_NoTenantResolved() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{}"))

	s.handler.Login(c)

	s.Equal(http.StatusNotFound, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthHandlerTestSuite) TestLogin_MalformedBody() {
	w, c := s.loginRequest(map[string]string{"email": "not-an-email"})

	s.handler.Login(c)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthHandlerTestSuite) TestSession_ReturnsAttachedSession() {
	session := &auth.SessionContext{
		UserID:      "u1",
		TenantID:    1,
		TenantSlug:  "clinic_abc",
		SchemaName:  "tenant_clinic_abc",
		Role:        "admin",
		AllowedApps: []string{"hub", "tq"},
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/auth/session", nil)
	c.Set("session", session)

	s.handler.Session(c)

	s.Equal(http.StatusOK, w.Code)
	var response dto.SessionResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("u1", response.UserID)
	s.Equal("clinic_abc", response.TenantSlug)
}

func (s *AuthHandlerTestSuite) TestSession_Unauthenticated() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/auth/session", nil)

	s.handler.Session(c)

	s.Equal(http.StatusUnauthorized, w.Code)
}
