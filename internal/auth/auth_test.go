package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/config"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/mocks"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/pkg/logger"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockResolver *mocks.TenantResolver
	mockExecutor *mocks.SchemaExecutor
	mockUsers    *mocks.UserRepository
	cfg          *config.Config
	service      *Service

	tenant       *domain.Tenant
	passwordHash string
}

func (s *AuthServiceTestSuite) SetupSuite() {
	// MinCost keeps the suite fast; production uses DefaultCost.
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.passwordHash = string(hash)
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockResolver = new(mocks.TenantResolver)
	s.mockExecutor = new(mocks.SchemaExecutor)
	s.mockUsers = new(mocks.UserRepository)

	s.cfg = &config.Config{
		JWTSecretKey:       "test-secret",
		JWTExpirationHours: 24,
	}

	s.service = NewService(s.mockResolver, s.mockExecutor, s.cfg, logger.NewLogger("development"))
	s.service.newUserRepo = func(tx *gorm.DB) repository.UserRepository {
		return s.mockUsers
	}

	s.tenant = &domain.Tenant{
		ID:                  7,
		Slug:                "clinic_abc",
		Name:                "Clinic ABC",
		SchemaName:          "tenant_clinic_abc",
		Status:              domain.TenantStatusActive,
		AllowedApplications: []string{"hub", "tq"},
	}
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

// expectScopedCall makes the executor run fn and propagate its error, the way
// the real executor does.
func (s *AuthServiceTestSuite) expectScopedCall(schemaName string) {
	s.mockExecutor.On("WithTenantSchema", mock.Anything, schemaName, mock.Anything).
		Return(func(ctx context.Context, _ string, fn func(*gorm.DB) error) error {
			return fn(nil)
		})
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := &domain.User{
		ID:           "9a1f6a0e-0000-4000-8000-000000000001",
		Email:        "owner@clinic-abc.test",
		PasswordHash: s.passwordHash,
		Role:         "admin",
		Active:       true,
	}

	s.expectScopedCall("tenant_clinic_abc")
	s.mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil)

	result, err := s.service.Login(ctx, s.tenant, Credentials{Email: user.Email, Password: "s3cret-pass"})

	s.NoError(err)
	s.NotEmpty(result.Token)
	s.Equal(user.ID, result.User.ID)
	s.Equal([]string{"hub", "tq"}, result.AllowedApps)
	s.mockUsers.AssertExpectations(s.T())
	s.mockExecutor.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	user := &domain.User{
		ID:           "9a1f6a0e-0000-4000-8000-000000000001",
		Email:        "owner@clinic-abc.test",
		PasswordHash: s.passwordHash,
		Active:       true,
	}

	s.expectScopedCall("tenant_clinic_abc")
	s.mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil)

	result, err := s.service.Login(ctx, s.tenant, Credentials{Email: user.Email, Password: "wrong"})

	s.ErrorIs(err, ErrInvalidCredentials)
	s.Nil(result)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	ctx := context.Background()

	s.expectScopedCall("tenant_clinic_abc")
	s.mockUsers.On("GetByEmail", ctx, "nobody@clinic-abc.test").Return(nil, gorm.ErrRecordNotFound)

	result, err := s.service.Login(ctx, s.tenant, Credentials{Email: "nobody@clinic-abc.test", Password: "whatever"})

	// Unknown email and wrong password must be indistinguishable.
	s.ErrorIs(err, ErrInvalidCredentials)
	s.Nil(result)
}

func (s *AuthServiceTestSuite) TestLogin_SuspendedTenant() {
	ctx := context.Background()
	s.tenant.Status = domain.TenantStatusSuspended

	result, err := s.service.Login(ctx, s.tenant, Credentials{Email: "owner@clinic-abc.test", Password: "s3cret-pass"})

	s.ErrorIs(err, ErrTenantInactive)
	s.Nil(result)
	// A suspended tenant's schema must never be touched.
	s.mockExecutor.AssertNotCalled(s.T(), "WithTenantSchema", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestLogin_InactiveUser() {
	ctx := context.Background()
	user := &domain.User{
		ID:           "9a1f6a0e-0000-4000-8000-000000000001",
		Email:        "former@clinic-abc.test",
		PasswordHash: s.passwordHash,
		Active:       false,
	}

	s.expectScopedCall("tenant_clinic_abc")
	s.mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil)

	result, err := s.service.Login(ctx, s.tenant, Credentials{Email: user.Email, Password: "s3cret-pass"})

	s.ErrorIs(err, ErrUserInactive)
	s.Nil(result)
}

func (s *AuthServiceTestSuite) TestValidate_Roundtrip() {
	ctx := context.Background()
	user := &domain.User{
		ID:   "9a1f6a0e-0000-4000-8000-000000000001",
		Role: "admin",
	}

	token, err := s.service.IssueToken(user, s.tenant)
	s.Require().NoError(err)

	s.mockResolver.On("Resolve", ctx, "clinic_abc").Return(s.tenant, nil)

	session, err := s.service.Validate(ctx, token)

	s.NoError(err)
	s.Equal(user.ID, session.UserID)
	s.Equal(uint(7), session.TenantID)
	s.Equal("clinic_abc", session.TenantSlug)
	s.Equal("tenant_clinic_abc", session.SchemaName)
	s.Equal("admin", session.Role)
	s.True(session.AllowsApplication("tq"))
	s.False(session.AllowsApplication("billing"))
}

func (s *AuthServiceTestSuite) TestValidate_Expired() {
	ctx := context.Background()
	s.cfg.JWTExpirationHours = -1

	token, err := s.service.IssueToken(&domain.User{ID: "u1"}, s.tenant)
	s.Require().NoError(err)

	session, err := s.service.Validate(ctx, token)

	s.ErrorIs(err, ErrTokenExpired)
	s.Nil(session)
}

func (s *AuthServiceTestSuite) TestValidate_MissingExpiry() {
	// A token signed with the right secret but no exp claim must be
	// rejected like any other malformed token.
	claims := &SessionClaims{
		UserID:     "u1",
		TenantID:   s.tenant.ID,
		TenantSlug: s.tenant.Slug,
		SchemaName: s.tenant.SchemaName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecretKey))
	s.Require().NoError(err)

	session, err := s.service.Validate(context.Background(), token)

	s.ErrorIs(err, ErrTokenInvalid)
	s.Nil(session)
	s.mockResolver.AssertNotCalled(s.T(), "Resolve", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestValidate_Garbage() {
	session, err := s.service.Validate(context.Background(), "not-a-token")

	s.ErrorIs(err, ErrTokenInvalid)
	s.Nil(session)
}

func (s *AuthServiceTestSuite) TestValidate_WrongSecret() {
	token, err := s.service.IssueToken(&domain.User{ID: "u1"}, s.tenant)
	s.Require().NoError(err)

	s.cfg.JWTSecretKey = "rotated-secret"

	session, err := s.service.Validate(context.Background(), token)

	s.ErrorIs(err, ErrTokenInvalid)
	s.Nil(session)
}

func (s *AuthServiceTestSuite) TestValidate_TenantSuspendedAfterIssuance() {
	ctx := context.Background()

	token, err := s.service.IssueToken(&domain.User{ID: "u1"}, s.tenant)
	s.Require().NoError(err)

	// Suspended tenants resolve exactly like missing ones.
	s.mockResolver.On("Resolve", ctx, "clinic_abc").Return(nil, errors.New("tenant not found"))

	session, err := s.service.Validate(ctx, token)

	s.ErrorIs(err, ErrTenantMismatch)
	s.Nil(session)
}

func (s *AuthServiceTestSuite) TestValidate_TenantIdentityChanged() {
	ctx := context.Background()

	token, err := s.service.IssueToken(&domain.User{ID: "u1"}, s.tenant)
	s.Require().NoError(err)

	recreated := &domain.Tenant{
		ID:         99,
		Slug:       "clinic_abc",
		SchemaName: "tenant_clinic_abc",
		Status:     domain.TenantStatusActive,
	}
	s.mockResolver.On("Resolve", ctx, "clinic_abc").Return(recreated, nil)

	session, err := s.service.Validate(ctx, token)

	s.ErrorIs(err, ErrTenantMismatch)
	s.Nil(session)
}
