package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/pkg/logger"
)

// TenantJob is one scheduled maintenance task. RunTenant is invoked once per
// active tenant with a session bound to that tenant's schema; returned stats
// are merged into the run's totals even when the tenant errored.
type TenantJob interface {
	Name() string
	Interval() time.Duration
	RunTenant(ctx context.Context, tenant *domain.Tenant, tx *gorm.DB) (domain.JobStats, error)
}

// TenantLister is the slice of the directory the runner needs.
type TenantLister interface {
	ListActive(ctx context.Context) ([]domain.Tenant, error)
}

// Runner fires each registered job on its own ticker. Runs never overlap per
// job name: a firing is skipped, not queued, while the previous run's
// execution row is still marked running. The check is a best-effort
// conditional insert, not a distributed lock, so a crashed process leaves a
// running row behind until an operator clears it.
type Runner struct {
	tenants      TenantLister
	repo         repository.PostgresRepository
	logger       *logger.Logger
	jobs         []TenantJob
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewRunner(tenants TenantLister, repo repository.PostgresRepository, logger *logger.Logger) *Runner {
	return &Runner{
		tenants:      tenants,
		repo:         repo,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
}

func (r *Runner) Register(job TenantJob) {
	r.jobs = append(r.jobs, job)
}

func (r *Runner) Start() {
	r.logger.Info("Starting scheduler...")

	for _, job := range r.jobs {
		r.waitGroup.Add(1)
		go r.runJob(job)
	}
}

func (r *Runner) Stop() {
	r.logger.Info("Stopping scheduler...")
	close(r.shutdownChan)
	r.waitGroup.Wait()
	r.logger.Info("Scheduler stopped")
}

func (r *Runner) runJob(job TenantJob) {
	defer r.waitGroup.Done()

	r.logger.Infof("Job %s scheduled every %s", job.Name(), job.Interval())

	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-r.shutdownChan:
			r.logger.Infof("Job %s shutting down", job.Name())
			return
		case <-ticker.C:
			r.RunOnce(context.Background(), job)
		}
	}
}

// RunOnce executes a single run of the given job across all active tenants.
// The execution row is inserted before any tenant work so a crash mid-scan
// stays observable as a running row with no completed_at.
func (r *Runner) RunOnce(ctx context.Context, job TenantJob) {
	execution, started, err := r.repo.JobExecution().StartExclusive(ctx, job.Name(), time.Now())
	if err != nil {
		r.logger.Error("Failed to record job start", err, zap.String("job", job.Name()))
		return
	}
	if !started {
		r.logger.Warn("Skipping job run, previous run still running", zap.String("job", job.Name()))
		return
	}

	stats := domain.JobStats{}
	var runErr error

	tenants, err := r.tenants.ListActive(ctx)
	if err != nil {
		runErr = err
	} else {
		for i := range tenants {
			tenant := &tenants[i]
			tenantStats, err := r.runTenant(ctx, job, tenant)
			mergeStats(stats, tenantStats)
			if err != nil {
				// One tenant's failure never aborts the scan of the rest.
				stats["failed"]++
				r.logger.Error("Job failed for tenant", err,
					zap.String("job", job.Name()),
					zap.String("tenant", tenant.Slug))
			}
		}
	}

	completedAt := time.Now()
	execution.CompletedAt = &completedAt
	execution.DurationMs = completedAt.Sub(execution.StartedAt).Milliseconds()
	execution.Stats = stats
	if runErr != nil {
		execution.Status = domain.JobStatusFailed
		execution.ErrorMessage = runErr.Error()
	} else {
		execution.Status = domain.JobStatusSuccess
	}

	if err := r.repo.JobExecution().Finish(ctx, execution); err != nil {
		r.logger.Error("Failed to record job completion", err, zap.String("job", job.Name()))
		return
	}

	r.logger.Info("Job run completed",
		zap.String("job", job.Name()),
		zap.String("status", string(execution.Status)),
		zap.Int64("duration_ms", execution.DurationMs),
		zap.Any("stats", stats))
}

func (r *Runner) runTenant(ctx context.Context, job TenantJob, tenant *domain.Tenant) (domain.JobStats, error) {
	var tenantStats domain.JobStats
	err := r.repo.Schemas().WithTenantSchema(ctx, tenant.SchemaName, func(tx *gorm.DB) error {
		stats, err := job.RunTenant(ctx, tenant, tx)
		tenantStats = stats
		return err
	})
	return tenantStats, err
}

func mergeStats(into, from domain.JobStats) {
	for k, v := range from {
		into[k] += v
	}
}
