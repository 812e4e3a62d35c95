package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
)

type JobExecutionRepository struct {
	db *gorm.DB
}

func NewJobExecutionRepository(db *gorm.DB) *JobExecutionRepository {
	return &JobExecutionRepository{db: db}
}

// StartExclusive inserts a running row for jobName only when no other row for
// the same job is still running. The conditional insert keeps the overlap
// check atomic; a plain read-then-insert would race against a second runner.
func (r *JobExecutionRepository) StartExclusive(ctx context.Context, jobName string, startedAt time.Time) (*domain.JobExecution, bool, error) {
	var execution domain.JobExecution
	result := r.db.WithContext(ctx).Raw(`
		INSERT INTO public.job_executions (job_name, status, started_at, stats)
		SELECT ?, ?, ?, '{}'::jsonb
		WHERE NOT EXISTS (
			SELECT 1 FROM public.job_executions
			WHERE job_name = ? AND status = ?
		)
		RETURNING id, job_name, status, started_at, completed_at, duration_ms, stats, error_message`,
		jobName, domain.JobStatusRunning, startedAt, jobName, domain.JobStatusRunning,
	).Scan(&execution)

	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &execution, true, nil
}

func (r *JobExecutionRepository) Finish(ctx context.Context, execution *domain.JobExecution) error {
	return r.db.WithContext(ctx).
		Model(&domain.JobExecution{}).
		Where("id = ?", execution.ID).
		Updates(map[string]any{
			"status":        execution.Status,
			"completed_at":  execution.CompletedAt,
			"duration_ms":   execution.DurationMs,
			"stats":         execution.Stats,
			"error_message": execution.ErrorMessage,
		}).Error
}

func (r *JobExecutionRepository) List(ctx context.Context, filter domain.JobExecutionFilter) ([]domain.JobExecution, error) {
	query := r.db.WithContext(ctx).Model(&domain.JobExecution{})

	if filter.JobName != "" {
		query = query.Where("job_name = ?", filter.JobName)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.Since.IsZero() {
		query = query.Where("started_at >= ?", filter.Since)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var executions []domain.JobExecution
	if err := query.
		Order("started_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}

// ListStuck returns running rows older than the given cutoff. A running row
// without a completed_at past its expected duration is the operator's signal
// that a run crashed mid-scan; nothing auto-recovers it.
func (r *JobExecutionRepository) ListStuck(ctx context.Context, olderThan time.Time) ([]domain.JobExecution, error) {
	var executions []domain.JobExecution
	if err := r.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", domain.JobStatusRunning, olderThan).
		Order("started_at").
		Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}
