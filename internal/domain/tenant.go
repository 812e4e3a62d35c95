package domain

import (
	"time"

	"github.com/lib/pq"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is a row in the global directory (public schema). Tenants are never
// deleted, only suspended.
type Tenant struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Slug                string         `gorm:"type:text;not null;unique" json:"slug"`
	Name                string         `gorm:"type:text;not null" json:"name"`
	SchemaName          string         `gorm:"type:text;not null;unique" json:"schema_name"`
	Locale              string         `gorm:"type:text;not null;default:'en'" json:"locale"`
	Status              TenantStatus   `gorm:"type:text;not null;default:'active'" json:"status"`
	AllowedApplications pq.StringArray `gorm:"type:text[];not null;default:'{hub}'" json:"allowed_applications"`
	CreatedAt           time.Time      `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "public.tenants"
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// AllowsApplication reports whether the given application key (e.g. "tq",
// "hub") is enabled for this tenant.
func (t *Tenant) AllowsApplication(app string) bool {
	for _, a := range t.AllowedApplications {
		if a == app {
			return true
		}
	}
	return false
}
