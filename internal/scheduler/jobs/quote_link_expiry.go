package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/internal/repository/postgres"
)

const QuoteLinkExpiryJobName = "quote_link_expiry"

// QuoteLinkExpiry clears public quote links past their deadline so the links
// stop resolving.
type QuoteLinkExpiry struct {
	interval time.Duration

	newQuoteRepo func(tx *gorm.DB) repository.QuoteRepository
}

func NewQuoteLinkExpiry(interval time.Duration) *QuoteLinkExpiry {
	return &QuoteLinkExpiry{
		interval: interval,
		newQuoteRepo: func(tx *gorm.DB) repository.QuoteRepository {
			return postgres.NewQuoteRepository(tx)
		},
	}
}

func (j *QuoteLinkExpiry) Name() string {
	return QuoteLinkExpiryJobName
}

func (j *QuoteLinkExpiry) Interval() time.Duration {
	return j.interval
}

func (j *QuoteLinkExpiry) RunTenant(ctx context.Context, tenant *domain.Tenant, tx *gorm.DB) (domain.JobStats, error) {
	expired, err := j.newQuoteRepo(tx).ExpirePublicLinks(ctx, time.Now())
	if err != nil {
		return domain.JobStats{}, err
	}
	return domain.JobStats{"expired": expired}, nil
}
