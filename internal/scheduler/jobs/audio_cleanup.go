package jobs

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/internal/repository/postgres"
	"github.com/transquote/platform-api/pkg/logger"
)

const AudioCleanupJobName = "audio_cleanup"

// ObjectDeleter is the slice of the S3 client the cleanup job needs.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// AudioCleanup removes audio files whose retention window has passed: the S3
// object first, then the tracking row. A row is only deleted once its object
// is gone, so a failed S3 delete is retried on the next run.
type AudioCleanup struct {
	s3Client ObjectDeleter
	bucket   string
	interval time.Duration
	logger   *logger.Logger

	newAudioRepo func(tx *gorm.DB) repository.AudioFileRepository
}

func NewAudioCleanup(s3Client ObjectDeleter, bucket string, interval time.Duration, logger *logger.Logger) *AudioCleanup {
	return &AudioCleanup{
		s3Client: s3Client,
		bucket:   bucket,
		interval: interval,
		logger:   logger,
		newAudioRepo: func(tx *gorm.DB) repository.AudioFileRepository {
			return postgres.NewAudioFileRepository(tx)
		},
	}
}

func (j *AudioCleanup) Name() string {
	return AudioCleanupJobName
}

func (j *AudioCleanup) Interval() time.Duration {
	return j.interval
}

func (j *AudioCleanup) RunTenant(ctx context.Context, tenant *domain.Tenant, tx *gorm.DB) (domain.JobStats, error) {
	stats := domain.JobStats{"deleted": 0, "delete_failed": 0}

	repo := j.newAudioRepo(tx)
	expired, err := repo.ListExpired(ctx, time.Now())
	if err != nil {
		return stats, err
	}

	for _, file := range expired {
		if _, err := j.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(j.bucket),
			Key:    aws.String(file.StorageKey),
		}); err != nil {
			stats["delete_failed"]++
			j.logger.Errorf("Failed to delete audio object %s for tenant %s: %v", file.StorageKey, tenant.Slug, err)
			continue
		}

		if err := repo.Delete(ctx, file.ID); err != nil {
			stats["delete_failed"]++
			j.logger.Errorf("Failed to delete audio row %s for tenant %s: %v", file.ID, tenant.Slug, err)
			continue
		}
		stats["deleted"]++
	}

	return stats, nil
}
