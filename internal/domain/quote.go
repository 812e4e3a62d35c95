package domain

import (
	"time"
)

type QuoteStatus string

const (
	QuoteStatusOpen     QuoteStatus = "open"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// Quote is a transcription quote inside a tenant schema. A quote can carry a
// public link token so the customer can view it without a session; the token
// is cleared once PublicExpiresAt passes.
type Quote struct {
	ID              string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Reference       string      `gorm:"type:text;not null;unique" json:"reference"`
	Status          QuoteStatus `gorm:"type:text;not null;default:'open'" json:"status"`
	DurationMinutes float64     `gorm:"not null;default:0" json:"duration_minutes"`
	RatePerMinute   float64     `gorm:"not null;default:0" json:"rate_per_minute"`
	TotalCost       float64     `gorm:"not null;default:0" json:"total_cost"`
	PublicToken     *string     `gorm:"type:text;uniqueIndex" json:"-"`
	PublicExpiresAt *time.Time  `gorm:"type:timestamp with time zone" json:"public_expires_at,omitempty"`
	CreatedAt       time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Quote) TableName() string {
	return "quotes"
}

type QuoteFilter struct {
	Status   QuoteStatus
	Page     int
	PageSize int
}
