package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/mocks"
	"github.com/transquote/platform-api/pkg/logger"
)

type DirectoryTestSuite struct {
	suite.Suite
	mockRepo     *mocks.PostgresRepository
	mockTenant   *mocks.TenantRepository
	mockExecutor *mocks.SchemaExecutor
	directory    *Directory
}

func (s *DirectoryTestSuite) SetupTest() {
	s.mockRepo = new(mocks.PostgresRepository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockExecutor = new(mocks.SchemaExecutor)

	s.mockRepo.On("Tenant").Return(s.mockTenant)
	s.mockRepo.On("Schemas").Return(s.mockExecutor)

	// nil Redis client: resolution degrades to the database.
	s.directory = NewDirectory(s.mockRepo, nil, 30*time.Second, logger.NewLogger("development"))
}

func TestDirectory(t *testing.T) {
	suite.Run(t, new(DirectoryTestSuite))
}

func (s *DirectoryTestSuite) TestResolve_Active() {
	ctx := context.Background()
	tenant := &domain.Tenant{
		ID:         1,
		Slug:       "clinic_abc",
		SchemaName: "tenant_clinic_abc",
		Status:     domain.TenantStatusActive,
	}

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(tenant, nil)

	resolved, err := s.directory.Resolve(ctx, "clinic_abc")

	s.NoError(err)
	s.Equal("tenant_clinic_abc", resolved.SchemaName)
	s.mockTenant.AssertExpectations(s.T())
}

func (s *DirectoryTestSuite) TestResolve_SuspendedLooksMissing() {
	ctx := context.Background()
	tenant := &domain.Tenant{
		ID:     1,
		Slug:   "clinic_abc",
		Status: domain.TenantStatusSuspended,
	}

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(tenant, nil)

	resolved, err := s.directory.Resolve(ctx, "clinic_abc")

	s.ErrorIs(err, ErrTenantNotFound)
	s.Nil(resolved)
}

func (s *DirectoryTestSuite) TestResolve_Unknown() {
	ctx := context.Background()

	s.mockTenant.On("GetBySlug", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	resolved, err := s.directory.Resolve(ctx, "ghost")

	s.ErrorIs(err, ErrTenantNotFound)
	s.Nil(resolved)
}

func (s *DirectoryTestSuite) TestCreate_ProvisionsSchema() {
	ctx := context.Background()

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(nil, gorm.ErrRecordNotFound)
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).
		Return(func(_ context.Context, t *domain.Tenant) *domain.Tenant { return t }, nil)
	s.mockTenant.On("EnsureSchema", ctx, "tenant_clinic_abc").Return(nil)
	s.mockExecutor.On("WithTenantSchema", mock.Anything, "tenant_clinic_abc", mock.Anything).Return(nil)

	created, err := s.directory.Create(ctx, "clinic_abc", "Clinic ABC", "de", []string{"hub", "tq"})

	s.NoError(err)
	s.Equal("tenant_clinic_abc", created.SchemaName)
	s.Equal(domain.TenantStatusActive, created.Status)
	s.Equal("de", created.Locale)
	s.mockTenant.AssertExpectations(s.T())
	s.mockExecutor.AssertExpectations(s.T())
}

func (s *DirectoryTestSuite) TestCreate_Defaults() {
	ctx := context.Background()

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(nil, gorm.ErrRecordNotFound)
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).
		Return(func(_ context.Context, t *domain.Tenant) *domain.Tenant { return t }, nil)
	s.mockTenant.On("EnsureSchema", ctx, "tenant_clinic_abc").Return(nil)
	s.mockExecutor.On("WithTenantSchema", mock.Anything, "tenant_clinic_abc", mock.Anything).Return(nil)

	created, err := s.directory.Create(ctx, "clinic_abc", "Clinic ABC", "", nil)

	s.NoError(err)
	s.Equal("en", created.Locale)
	s.Equal([]string{"hub"}, []string(created.AllowedApplications))
}

func (s *DirectoryTestSuite) TestCreate_RollsBackRowWhenSchemaFails() {
	// A directory row without a schema must not survive: it would resolve
	// while every login against it fails, and the slug could never be retried.
	ctx := context.Background()
	boom := errors.New("permission denied for database")

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(nil, gorm.ErrRecordNotFound)
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).
		Return(func(_ context.Context, t *domain.Tenant) *domain.Tenant { return t }, nil)
	s.mockTenant.On("EnsureSchema", ctx, "tenant_clinic_abc").Return(boom)
	s.mockTenant.On("Delete", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	created, err := s.directory.Create(ctx, "clinic_abc", "Clinic ABC", "", nil)

	s.ErrorIs(err, boom)
	s.Nil(created)
	s.mockTenant.AssertCalled(s.T(), "Delete", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Slug == "clinic_abc"
	}))
	s.mockExecutor.AssertNotCalled(s.T(), "WithTenantSchema", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DirectoryTestSuite) TestCreate_RollsBackRowWhenMigrateFails() {
	ctx := context.Background()
	boom := errors.New("relation already exists")

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(nil, gorm.ErrRecordNotFound)
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).
		Return(func(_ context.Context, t *domain.Tenant) *domain.Tenant { return t }, nil)
	s.mockTenant.On("EnsureSchema", ctx, "tenant_clinic_abc").Return(nil)
	s.mockExecutor.On("WithTenantSchema", mock.Anything, "tenant_clinic_abc", mock.Anything).Return(boom)
	s.mockTenant.On("Delete", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	created, err := s.directory.Create(ctx, "clinic_abc", "Clinic ABC", "", nil)

	s.ErrorIs(err, boom)
	s.Nil(created)
	s.mockTenant.AssertCalled(s.T(), "Delete", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Slug == "clinic_abc"
	}))
}

func (s *DirectoryTestSuite) TestCreate_InvalidSlug() {
	for _, slug := range []string{"", "Clinic-ABC", "a", "has space", "semi;colon"} {
		created, err := s.directory.Create(context.Background(), slug, "x", "", nil)
		s.ErrorIs(err, ErrInvalidSlug, slug)
		s.Nil(created)
	}
	s.mockTenant.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *DirectoryTestSuite) TestCreate_Duplicate() {
	ctx := context.Background()
	existing := &domain.Tenant{ID: 1, Slug: "clinic_abc"}

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(existing, nil)

	created, err := s.directory.Create(ctx, "clinic_abc", "Clinic ABC", "", nil)

	s.ErrorIs(err, ErrTenantExists)
	s.Nil(created)
	s.mockTenant.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *DirectoryTestSuite) TestSuspendAndReactivate() {
	ctx := context.Background()
	tenant := &domain.Tenant{
		ID:     1,
		Slug:   "clinic_abc",
		Status: domain.TenantStatusActive,
	}

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(tenant, nil)
	s.mockTenant.On("Update", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	suspended, err := s.directory.Suspend(ctx, "clinic_abc")
	s.NoError(err)
	s.Equal(domain.TenantStatusSuspended, suspended.Status)

	reactivated, err := s.directory.Reactivate(ctx, "clinic_abc")
	s.NoError(err)
	s.Equal(domain.TenantStatusActive, reactivated.Status)
}

func (s *DirectoryTestSuite) TestUpdateSettings() {
	ctx := context.Background()
	tenant := &domain.Tenant{
		ID:                  1,
		Slug:                "clinic_abc",
		Locale:              "en",
		AllowedApplications: []string{"hub"},
	}

	s.mockTenant.On("GetBySlug", ctx, "clinic_abc").Return(tenant, nil)
	s.mockTenant.On("Update", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	updated, err := s.directory.UpdateSettings(ctx, "clinic_abc", "fr", []string{"hub", "tq"})

	s.NoError(err)
	s.Equal("fr", updated.Locale)
	s.True(updated.AllowsApplication("tq"))
}
