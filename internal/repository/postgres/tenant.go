package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if err := r.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// EnsureSchema creates the tenant schema if missing. The name goes through
// the same allow-list as the executor because CREATE SCHEMA cannot take a
// bound parameter either.
func (r *TenantRepository) EnsureSchema(ctx context.Context, schemaName string) error {
	if !schemaNamePattern.MatchString(schemaName) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}
	return r.db.WithContext(ctx).Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, schemaName)).Error
}

func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

// Delete removes a tenant row. Only used to roll back a provisioning attempt
// that failed after the row was inserted; suspension handles everything else.
func (r *TenantRepository) Delete(ctx context.Context, tenant *domain.Tenant) error {
	return r.db.WithContext(ctx).Delete(tenant).Error
}

func (r *TenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	if err := r.db.WithContext(ctx).Order("slug").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *TenantRepository) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	if err := r.db.WithContext(ctx).
		Where("status = ?", domain.TenantStatusActive).
		Order("slug").
		Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}
