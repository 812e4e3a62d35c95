package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/config"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/internal/repository/postgres"
	"github.com/transquote/platform-api/pkg/logger"
)

// dummyHash is compared against when the user does not exist, so a missing
// user costs the same bcrypt work as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

//go:generate mockery --name TenantResolver --output ../mocks
type TenantResolver interface {
	Resolve(ctx context.Context, slug string) (*domain.Tenant, error)
}

type Credentials struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        *domain.User
	Token       string
	AllowedApps []string
}

// Service implements the session layer: credential login against the tenant
// schema and stateless token validation with a live tenant re-check.
type Service struct {
	resolver TenantResolver
	executor repository.SchemaExecutor
	cfg      *config.Config
	logger   *logger.Logger

	// seam for tests; production uses the postgres repository
	newUserRepo func(tx *gorm.DB) repository.UserRepository
}

func NewService(resolver TenantResolver, executor repository.SchemaExecutor, cfg *config.Config, logger *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		executor: executor,
		cfg:      cfg,
		logger:   logger,
		newUserRepo: func(tx *gorm.DB) repository.UserRepository {
			return postgres.NewUserRepository(tx)
		},
	}
}

// Login checks credentials against the user table in the tenant's schema and
// issues a session token. All credential failures surface as
// ErrInvalidCredentials with the same shape and comparable timing.
func (s *Service) Login(ctx context.Context, tenant *domain.Tenant, creds Credentials) (*LoginResult, error) {
	if !tenant.IsActive() {
		// Burn a compare anyway so a suspended tenant is not distinguishable
		// from a wrong password by timing.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
		return nil, ErrTenantInactive
	}

	var user *domain.User
	err := s.executor.WithTenantSchema(ctx, tenant.SchemaName, func(tx *gorm.DB) error {
		found, err := s.newUserRepo(tx).GetByEmail(ctx, creds.Email)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrUserInactive
	}

	token, err := s.IssueToken(user, tenant)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:        user,
		Token:       token,
		AllowedApps: tenant.AllowedApplications,
	}, nil
}

// IssueToken signs a session token for the given user and tenant.
func (s *Service) IssueToken(user *domain.User, tenant *domain.Tenant) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:      user.ID,
		TenantID:    tenant.ID,
		TenantSlug:  tenant.Slug,
		SchemaName:  tenant.SchemaName,
		Role:        user.Role,
		AllowedApps: tenant.AllowedApplications,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecretKey))
}

// Validate verifies a token and re-resolves its tenant through the directory,
// so a tenant suspended after issuance rejects the token even though the
// signature is still valid.
func (s *Service) Validate(ctx context.Context, tokenString string) (*SessionContext, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims.UserID == "" || claims.TenantSlug == "" || claims.SchemaName == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	tenant, err := s.resolver.Resolve(ctx, claims.TenantSlug)
	if err != nil {
		return nil, ErrTenantMismatch
	}
	if tenant.ID != claims.TenantID || tenant.SchemaName != claims.SchemaName {
		return nil, ErrTenantMismatch
	}

	return &SessionContext{
		UserID:      claims.UserID,
		TenantID:    claims.TenantID,
		TenantSlug:  claims.TenantSlug,
		SchemaName:  claims.SchemaName,
		Role:        claims.Role,
		AllowedApps: claims.AllowedApps,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// HashPassword produces the bcrypt hash stored on user rows.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
