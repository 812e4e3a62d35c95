package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/internal/repository/postgres"
)

const CostUpdateJobName = "cost_update"

// CostUpdate recomputes total_cost on open quotes from their current duration
// and rate, picking up rate changes made since the quote was drafted.
type CostUpdate struct {
	interval time.Duration

	newQuoteRepo func(tx *gorm.DB) repository.QuoteRepository
}

func NewCostUpdate(interval time.Duration) *CostUpdate {
	return &CostUpdate{
		interval: interval,
		newQuoteRepo: func(tx *gorm.DB) repository.QuoteRepository {
			return postgres.NewQuoteRepository(tx)
		},
	}
}

func (j *CostUpdate) Name() string {
	return CostUpdateJobName
}

func (j *CostUpdate) Interval() time.Duration {
	return j.interval
}

func (j *CostUpdate) RunTenant(ctx context.Context, tenant *domain.Tenant, tx *gorm.DB) (domain.JobStats, error) {
	updated, err := j.newQuoteRepo(tx).RecalculateOpenCosts(ctx)
	if err != nil {
		return domain.JobStats{}, err
	}
	return domain.JobStats{"updated": updated}, nil
}
