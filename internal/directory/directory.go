package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/pkg/logger"
)

// Slugs become Postgres schema names (tenant_<slug>), so the character set is
// locked down here, at provisioning time.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_]{1,62}$`)

// Directory is the read path for tenant resolution and the admin path for
// tenant lifecycle. Resolution is read-through cached in Redis; directory
// mutations invalidate the cached entry, so a suspension is visible to
// resolution within at most one cache TTL.
type Directory struct {
	repo     repository.PostgresRepository
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *logger.Logger
}

func NewDirectory(repo repository.PostgresRepository, redisClient *redis.Client, cacheTTL time.Duration, logger *logger.Logger) *Directory {
	return &Directory{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve maps a tenant slug to its directory row. Suspended tenants resolve
// as ErrTenantNotFound, identical to missing ones.
func (d *Directory) Resolve(ctx context.Context, slug string) (*domain.Tenant, error) {
	tenant, err := d.lookup(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

func (d *Directory) lookup(ctx context.Context, slug string) (*domain.Tenant, error) {
	if cached := d.cacheGet(ctx, slug); cached != nil {
		return cached, nil
	}

	tenant, err := d.repo.Tenant().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	d.cacheSet(ctx, tenant)
	return tenant, nil
}

// Create provisions a new tenant: directory row, Postgres schema, and the
// per-tenant tables inside it.
func (d *Directory) Create(ctx context.Context, slug, name, locale string, allowedApps []string) (*domain.Tenant, error) {
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	if locale == "" {
		locale = "en"
	}
	if len(allowedApps) == 0 {
		allowedApps = []string{"hub"}
	}

	if _, err := d.repo.Tenant().GetBySlug(ctx, slug); err == nil {
		return nil, ErrTenantExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tenant := &domain.Tenant{
		Slug:                slug,
		Name:                name,
		SchemaName:          "tenant_" + slug,
		Locale:              locale,
		Status:              domain.TenantStatusActive,
		AllowedApplications: allowedApps,
	}

	created, err := d.repo.Tenant().Create(ctx, tenant)
	if err != nil {
		return nil, err
	}

	if err := d.repo.Tenant().EnsureSchema(ctx, created.SchemaName); err != nil {
		d.rollbackCreate(ctx, created)
		return nil, fmt.Errorf("failed to provision schema for %s: %w", slug, err)
	}

	err = d.repo.Schemas().WithTenantSchema(ctx, created.SchemaName, func(tx *gorm.DB) error {
		return tx.AutoMigrate(&domain.User{}, &domain.Quote{}, &domain.AudioFile{})
	})
	if err != nil {
		d.rollbackCreate(ctx, created)
		return nil, fmt.Errorf("failed to migrate schema for %s: %w", slug, err)
	}

	return created, nil
}

// rollbackCreate removes the directory row of a tenant whose schema
// provisioning failed partway. Without it the slug would resolve to a tenant
// with no schema and a retried Create would hit ErrTenantExists.
func (d *Directory) rollbackCreate(ctx context.Context, tenant *domain.Tenant) {
	if err := d.repo.Tenant().Delete(ctx, tenant); err != nil {
		d.logger.Error("Failed to roll back tenant row after provisioning failure", err,
			zap.String("slug", tenant.Slug))
	}
	d.cacheInvalidate(ctx, tenant.Slug)
}

func (d *Directory) List(ctx context.Context) ([]domain.Tenant, error) {
	return d.repo.Tenant().List(ctx)
}

// ListActive returns tenants eligible for request traffic and maintenance
// scans.
func (d *Directory) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	return d.repo.Tenant().ListActive(ctx)
}

func (d *Directory) Suspend(ctx context.Context, slug string) (*domain.Tenant, error) {
	return d.setStatus(ctx, slug, domain.TenantStatusSuspended)
}

func (d *Directory) Reactivate(ctx context.Context, slug string) (*domain.Tenant, error) {
	return d.setStatus(ctx, slug, domain.TenantStatusActive)
}

// UpdateSettings changes locale and/or the allowed-application list.
func (d *Directory) UpdateSettings(ctx context.Context, slug, locale string, allowedApps []string) (*domain.Tenant, error) {
	tenant, err := d.repo.Tenant().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	if locale != "" {
		tenant.Locale = locale
	}
	if allowedApps != nil {
		tenant.AllowedApplications = allowedApps
	}
	tenant.UpdatedAt = time.Now()

	if err := d.repo.Tenant().Update(ctx, tenant); err != nil {
		return nil, err
	}
	d.cacheInvalidate(ctx, slug)
	return tenant, nil
}

func (d *Directory) setStatus(ctx context.Context, slug string, status domain.TenantStatus) (*domain.Tenant, error) {
	tenant, err := d.repo.Tenant().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	tenant.Status = status
	tenant.UpdatedAt = time.Now()

	if err := d.repo.Tenant().Update(ctx, tenant); err != nil {
		return nil, err
	}
	d.cacheInvalidate(ctx, slug)
	return tenant, nil
}

func cacheKey(slug string) string {
	return "tenant:dir:" + slug
}

// Cache reads fail open: a Redis outage degrades resolution to the database,
// it never blocks requests.
func (d *Directory) cacheGet(ctx context.Context, slug string) *domain.Tenant {
	if d.redis == nil {
		return nil
	}
	payload, err := d.redis.Get(ctx, cacheKey(slug)).Bytes()
	if err != nil {
		if err != redis.Nil {
			d.logger.Error("Redis error reading tenant cache", err)
		}
		return nil
	}

	var tenant domain.Tenant
	if err := json.Unmarshal(payload, &tenant); err != nil {
		d.logger.Error("Corrupt tenant cache entry", err)
		d.cacheInvalidate(ctx, slug)
		return nil
	}
	return &tenant
}

func (d *Directory) cacheSet(ctx context.Context, tenant *domain.Tenant) {
	if d.redis == nil {
		return
	}
	payload, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	if err := d.redis.Set(ctx, cacheKey(tenant.Slug), payload, d.cacheTTL).Err(); err != nil {
		d.logger.Error("Redis error writing tenant cache", err)
	}
}

func (d *Directory) cacheInvalidate(ctx context.Context, slug string) {
	if d.redis == nil {
		return
	}
	if err := d.redis.Del(ctx, cacheKey(slug)).Err(); err != nil {
		d.logger.Error("Redis error invalidating tenant cache", err)
	}
}
