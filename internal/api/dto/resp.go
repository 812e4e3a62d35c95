package dto

import (
	"time"

	"github.com/transquote/platform-api/internal/auth"
	"github.com/transquote/platform-api/internal/domain"
)

type UserResponse struct {
	ID    string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email string `json:"email" example:"john@clinic.com"`
	Name  string `json:"name" example:"John Doe"`
	Role  string `json:"role" example:"user"`
}

type LoginResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	AllowedApps []string     `json:"allowed_apps" example:"hub,tq"`
}

type SessionResponse struct {
	UserID      string    `json:"user_id"`
	TenantID    uint      `json:"tenant_id"`
	TenantSlug  string    `json:"tenant_slug" example:"clinic_abc"`
	SchemaName  string    `json:"schema_name" example:"tenant_clinic_abc"`
	Role        string    `json:"role" example:"user"`
	AllowedApps []string  `json:"allowed_apps" example:"hub,tq"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type TenantResponse struct {
	ID                  uint      `json:"id"`
	Slug                string    `json:"slug" example:"clinic_abc"`
	Name                string    `json:"name" example:"Clinic ABC"`
	SchemaName          string    `json:"schema_name" example:"tenant_clinic_abc"`
	Locale              string    `json:"locale" example:"en"`
	Status              string    `json:"status" example:"active"`
	AllowedApplications []string  `json:"allowed_applications" example:"hub,tq"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type JobExecutionResponse struct {
	ID           uint             `json:"id"`
	JobName      string           `json:"job_name" example:"audio_cleanup"`
	Status       string           `json:"status" example:"success"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	DurationMs   int64            `json:"duration_ms"`
	Stats        map[string]int64 `json:"stats"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

type QuoteResponse struct {
	ID              string     `json:"id"`
	Reference       string     `json:"reference" example:"Q-1A2B3C4D"`
	Status          string     `json:"status" example:"open"`
	DurationMinutes float64    `json:"duration_minutes"`
	RatePerMinute   float64    `json:"rate_per_minute"`
	TotalCost       float64    `json:"total_cost"`
	PublicExpiresAt *time.Time `json:"public_expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PublicQuoteResponse is the reduced view served on public quote links.
type PublicQuoteResponse struct {
	Reference       string  `json:"reference" example:"Q-1A2B3C4D"`
	Status          string  `json:"status" example:"open"`
	DurationMinutes float64 `json:"duration_minutes"`
	TotalCost       float64 `json:"total_cost"`
}

type AudioFileResponse struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quote_id"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	RetainUntil time.Time `json:"retain_until"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

func NewSessionResponse(session *auth.SessionContext) SessionResponse {
	return SessionResponse{
		UserID:      session.UserID,
		TenantID:    session.TenantID,
		TenantSlug:  session.TenantSlug,
		SchemaName:  session.SchemaName,
		Role:        session.Role,
		AllowedApps: session.AllowedApps,
		ExpiresAt:   session.ExpiresAt,
	}
}

func NewTenantResponse(tenant *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:                  tenant.ID,
		Slug:                tenant.Slug,
		Name:                tenant.Name,
		SchemaName:          tenant.SchemaName,
		Locale:              tenant.Locale,
		Status:              string(tenant.Status),
		AllowedApplications: tenant.AllowedApplications,
		CreatedAt:           tenant.CreatedAt,
		UpdatedAt:           tenant.UpdatedAt,
	}
}

func NewJobExecutionResponse(execution *domain.JobExecution) JobExecutionResponse {
	return JobExecutionResponse{
		ID:           execution.ID,
		JobName:      execution.JobName,
		Status:       string(execution.Status),
		StartedAt:    execution.StartedAt,
		CompletedAt:  execution.CompletedAt,
		DurationMs:   execution.DurationMs,
		Stats:        execution.Stats,
		ErrorMessage: execution.ErrorMessage,
	}
}

func NewQuoteResponse(quote *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:              quote.ID,
		Reference:       quote.Reference,
		Status:          string(quote.Status),
		DurationMinutes: quote.DurationMinutes,
		RatePerMinute:   quote.RatePerMinute,
		TotalCost:       quote.TotalCost,
		PublicExpiresAt: quote.PublicExpiresAt,
		CreatedAt:       quote.CreatedAt,
	}
}

func NewPublicQuoteResponse(quote *domain.Quote) PublicQuoteResponse {
	return PublicQuoteResponse{
		Reference:       quote.Reference,
		Status:          string(quote.Status),
		DurationMinutes: quote.DurationMinutes,
		TotalCost:       quote.TotalCost,
	}
}

func NewAudioFileResponse(file *domain.AudioFile) AudioFileResponse {
	return AudioFileResponse{
		ID:          file.ID,
		QuoteID:     file.QuoteID,
		StorageKey:  file.StorageKey,
		ContentType: file.ContentType,
		SizeBytes:   file.SizeBytes,
		RetainUntil: file.RetainUntil,
	}
}
