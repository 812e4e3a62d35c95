package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
)

// SchemaExecutor runs fn against a single pooled connection whose search path
// is bound to the given tenant schema for the duration of the call. The
// search path is reset before the connection goes back to the pool on every
// exit path; a connection whose reset fails is discarded, never reused.
//
//go:generate mockery --name SchemaExecutor --output ../mocks
type SchemaExecutor interface {
	WithTenantSchema(ctx context.Context, schemaName string, fn func(tx *gorm.DB) error) error
}

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	// EnsureSchema creates the tenant's Postgres schema if it does not exist.
	EnsureSchema(ctx context.Context, schemaName string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	// Delete removes a directory row. Tenant lifecycle removal is suspension;
	// this only rolls back a partially provisioned tenant.
	Delete(ctx context.Context, tenant *domain.Tenant) error
	List(ctx context.Context) ([]domain.Tenant, error)
	ListActive(ctx context.Context) ([]domain.Tenant, error)
}

//go:generate mockery --name JobExecutionRepository --output ../mocks
type JobExecutionRepository interface {
	// StartExclusive inserts a running row for jobName unless one is already
	// running. The bool reports whether the row was created.
	StartExclusive(ctx context.Context, jobName string, startedAt time.Time) (*domain.JobExecution, bool, error)
	Finish(ctx context.Context, execution *domain.JobExecution) error
	List(ctx context.Context, filter domain.JobExecutionFilter) ([]domain.JobExecution, error)
	ListStuck(ctx context.Context, olderThan time.Time) ([]domain.JobExecution, error)
}

// Tenant-schema repositories are constructed per scoped call from the *gorm.DB
// handed out by the SchemaExecutor; they must never be built over the shared
// pool directly.

//go:generate mockery --name UserRepository --output ../mocks
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

//go:generate mockery --name QuoteRepository --output ../mocks
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	GetByPublicToken(ctx context.Context, token string) (*domain.Quote, error)
	List(ctx context.Context, filter domain.QuoteFilter) ([]domain.Quote, error)
	ExpirePublicLinks(ctx context.Context, now time.Time) (int64, error)
	RecalculateOpenCosts(ctx context.Context) (int64, error)
}

//go:generate mockery --name AudioFileRepository --output ../mocks
type AudioFileRepository interface {
	Create(ctx context.Context, file *domain.AudioFile) (*domain.AudioFile, error)
	ListExpired(ctx context.Context, before time.Time) ([]domain.AudioFile, error)
	Delete(ctx context.Context, id string) error
}

//go:generate mockery --name PostgresRepository --output ../mocks
type PostgresRepository interface {
	Tenant() TenantRepository
	JobExecution() JobExecutionRepository
	Schemas() SchemaExecutor
}
