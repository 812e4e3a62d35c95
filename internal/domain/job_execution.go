package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

// JobStats is a jsonb mapping of counter name to count (deleted, failed, ...).
type JobStats map[string]int64

func (s JobStats) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *JobStats) Scan(value any) error {
	if value == nil {
		*s = JobStats{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into JobStats", value)
		}
		b = []byte(str)
	}
	return json.Unmarshal(b, s)
}

// JobExecution is the audit record of one scheduled maintenance run. It lives
// in the public schema, the one cross-tenant table besides the directory.
// A row is inserted with status=running before any tenant work starts, so a
// crashed run stays visible as a running row with no completed_at.
type JobExecution struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	JobName      string     `gorm:"type:text;not null;index" json:"job_name"`
	Status       JobStatus  `gorm:"type:text;not null" json:"status"`
	StartedAt    time.Time  `gorm:"type:timestamp with time zone;not null" json:"started_at"`
	CompletedAt  *time.Time `gorm:"type:timestamp with time zone" json:"completed_at,omitempty"`
	DurationMs   int64      `gorm:"not null;default:0" json:"duration_ms"`
	Stats        JobStats   `gorm:"type:jsonb;not null;default:'{}'" json:"stats"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
}

func (JobExecution) TableName() string {
	return "public.job_executions"
}

type JobExecutionFilter struct {
	JobName  string
	Status   JobStatus
	Since    time.Time
	Page     int
	PageSize int
}
