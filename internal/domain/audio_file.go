package domain

import (
	"time"
)

// AudioFile tracks an uploaded source recording inside a tenant schema. The
// object itself lives in S3 under StorageKey; the cleanup job removes both the
// object and this row once RetainUntil passes.
type AudioFile struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	QuoteID     string    `gorm:"type:uuid;not null;index" json:"quote_id"`
	StorageKey  string    `gorm:"type:text;not null" json:"storage_key"`
	ContentType string    `gorm:"type:text;not null;default:'audio/mpeg'" json:"content_type"`
	SizeBytes   int64     `gorm:"not null;default:0" json:"size_bytes"`
	RetainUntil time.Time `gorm:"type:timestamp with time zone;not null;index" json:"retain_until"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AudioFile) TableName() string {
	return "audio_files"
}
