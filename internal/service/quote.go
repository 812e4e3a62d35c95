package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/internal/repository/postgres"
)

// QuoteService is the transcription-quoting application service. Every
// operation runs inside a tenant-schema scope; the service never touches the
// shared pool directly.
type QuoteService struct {
	executor repository.SchemaExecutor

	newQuoteRepo func(tx *gorm.DB) repository.QuoteRepository
	newAudioRepo func(tx *gorm.DB) repository.AudioFileRepository
}

func NewQuoteService(executor repository.SchemaExecutor) *QuoteService {
	return &QuoteService{
		executor: executor,
		newQuoteRepo: func(tx *gorm.DB) repository.QuoteRepository {
			return postgres.NewQuoteRepository(tx)
		},
		newAudioRepo: func(tx *gorm.DB) repository.AudioFileRepository {
			return postgres.NewAudioFileRepository(tx)
		},
	}
}

type CreateQuoteInput struct {
	DurationMinutes float64
	RatePerMinute   float64
	PublicLinkTTL   time.Duration
}

func (s *QuoteService) Create(ctx context.Context, schemaName string, input CreateQuoteInput) (*domain.Quote, error) {
	quote := &domain.Quote{
		Reference:       newQuoteReference(),
		Status:          domain.QuoteStatusOpen,
		DurationMinutes: input.DurationMinutes,
		RatePerMinute:   input.RatePerMinute,
		TotalCost:       input.DurationMinutes * input.RatePerMinute,
	}

	if input.PublicLinkTTL > 0 {
		token := uuid.NewString()
		expiresAt := time.Now().Add(input.PublicLinkTTL)
		quote.PublicToken = &token
		quote.PublicExpiresAt = &expiresAt
	}

	err := s.executor.WithTenantSchema(ctx, schemaName, func(tx *gorm.DB) error {
		_, err := s.newQuoteRepo(tx).Create(ctx, quote)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) GetByID(ctx context.Context, schemaName, id string) (*domain.Quote, error) {
	var quote *domain.Quote
	err := s.executor.WithTenantSchema(ctx, schemaName, func(tx *gorm.DB) error {
		found, err := s.newQuoteRepo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		quote = found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) List(ctx context.Context, schemaName string, filter domain.QuoteFilter) ([]domain.Quote, error) {
	var quotes []domain.Quote
	err := s.executor.WithTenantSchema(ctx, schemaName, func(tx *gorm.DB) error {
		found, err := s.newQuoteRepo(tx).List(ctx, filter)
		if err != nil {
			return err
		}
		quotes = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// GetPublic fetches a quote by its public link token. Expired links answer
// exactly like unknown tokens.
func (s *QuoteService) GetPublic(ctx context.Context, schemaName, token string) (*domain.Quote, error) {
	var quote *domain.Quote
	err := s.executor.WithTenantSchema(ctx, schemaName, func(tx *gorm.DB) error {
		found, err := s.newQuoteRepo(tx).GetByPublicToken(ctx, token)
		if err != nil {
			return err
		}
		quote = found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return quote, nil
}

type RegisterAudioInput struct {
	QuoteID     string
	StorageKey  string
	ContentType string
	SizeBytes   int64
	Retention   time.Duration
}

// RegisterAudio records an uploaded recording against a quote. The retention
// clock starts now; the audio cleanup job takes it from there.
func (s *QuoteService) RegisterAudio(ctx context.Context, schemaName string, input RegisterAudioInput) (*domain.AudioFile, error) {
	if input.Retention <= 0 {
		input.Retention = 30 * 24 * time.Hour
	}

	file := &domain.AudioFile{
		QuoteID:     input.QuoteID,
		StorageKey:  input.StorageKey,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		RetainUntil: time.Now().Add(input.Retention),
	}

	err := s.executor.WithTenantSchema(ctx, schemaName, func(tx *gorm.DB) error {
		if _, err := s.newQuoteRepo(tx).GetByID(ctx, input.QuoteID); err != nil {
			return err
		}
		_, err := s.newAudioRepo(tx).Create(ctx, file)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return file, nil
}

func newQuoteReference() string {
	return fmt.Sprintf("Q-%s", strings.ToUpper(uuid.NewString()[:8]))
}
