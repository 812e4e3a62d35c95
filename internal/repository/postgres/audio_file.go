package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
)

// AudioFileRepository operates on a tenant-schema-bound gorm session.
type AudioFileRepository struct {
	tx *gorm.DB
}

func NewAudioFileRepository(tx *gorm.DB) *AudioFileRepository {
	return &AudioFileRepository{tx: tx}
}

func (r *AudioFileRepository) Create(ctx context.Context, file *domain.AudioFile) (*domain.AudioFile, error) {
	if err := r.tx.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *AudioFileRepository) ListExpired(ctx context.Context, before time.Time) ([]domain.AudioFile, error) {
	var files []domain.AudioFile
	if err := r.tx.WithContext(ctx).
		Where("retain_until < ?", before).
		Order("retain_until").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *AudioFileRepository) Delete(ctx context.Context, id string) error {
	return r.tx.WithContext(ctx).Delete(&domain.AudioFile{}, "id = ?", id).Error
}
