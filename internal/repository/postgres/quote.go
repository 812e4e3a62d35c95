package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
)

// QuoteRepository operates on a tenant-schema-bound gorm session, like
// UserRepository.
type QuoteRepository struct {
	tx *gorm.DB
}

func NewQuoteRepository(tx *gorm.DB) *QuoteRepository {
	return &QuoteRepository{tx: tx}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	if err := r.tx.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var quote domain.Quote
	if err := r.tx.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) GetByPublicToken(ctx context.Context, token string) (*domain.Quote, error) {
	var quote domain.Quote
	if err := r.tx.WithContext(ctx).
		First(&quote, "public_token = ? AND public_expires_at > ?", token, time.Now()).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) List(ctx context.Context, filter domain.QuoteFilter) ([]domain.Quote, error) {
	query := r.tx.WithContext(ctx).Model(&domain.Quote{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var quotes []domain.Quote
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// ExpirePublicLinks clears the public token on quotes whose link deadline has
// passed, so expired links read as not-found.
func (r *QuoteRepository) ExpirePublicLinks(ctx context.Context, now time.Time) (int64, error) {
	result := r.tx.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("public_token IS NOT NULL AND public_expires_at <= ?", now).
		Updates(map[string]any{
			"public_token":      nil,
			"public_expires_at": nil,
		})
	return result.RowsAffected, result.Error
}

// RecalculateOpenCosts refreshes total_cost on open quotes from the current
// duration and rate columns.
func (r *QuoteRepository) RecalculateOpenCosts(ctx context.Context) (int64, error) {
	result := r.tx.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("status = ?", domain.QuoteStatusOpen).
		Update("total_cost", gorm.Expr("duration_minutes * rate_per_minute"))
	return result.RowsAffected, result.Error
}
