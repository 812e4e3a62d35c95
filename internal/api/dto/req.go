package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@clinic.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

type CreateTenantRequest struct {
	Slug                string   `json:"slug" binding:"required" example:"clinic_abc"`
	Name                string   `json:"name" binding:"required" example:"Clinic ABC"`
	Locale              string   `json:"locale" example:"en"`
	AllowedApplications []string `json:"allowed_applications" example:"hub,tq"`
}

type UpdateTenantRequest struct {
	Locale              string   `json:"locale" example:"pt"`
	AllowedApplications []string `json:"allowed_applications" example:"hub,tq"`
}

type CreateQuoteRequest struct {
	DurationMinutes float64 `json:"duration_minutes" binding:"required,gt=0" example:"42.5"`
	RatePerMinute   float64 `json:"rate_per_minute" binding:"required,gt=0" example:"1.75"`
	PublicLinkHours int     `json:"public_link_hours" example:"72"`
}

type RegisterAudioRequest struct {
	QuoteID       string `json:"quote_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	StorageKey    string `json:"storage_key" binding:"required" example:"clinic_abc/recordings/intake-01.mp3"`
	ContentType   string `json:"content_type" example:"audio/mpeg"`
	SizeBytes     int64  `json:"size_bytes" binding:"gte=0" example:"1048576"`
	RetentionDays int    `json:"retention_days" binding:"gte=0" example:"30"`
}
