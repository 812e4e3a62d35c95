package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/mocks"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/pkg/logger"
)

type mockObjectDeleter struct {
	mock.Mock
}

func (m *mockObjectDeleter) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

type AudioCleanupTestSuite struct {
	suite.Suite
	mockS3    *mockObjectDeleter
	mockAudio *mocks.AudioFileRepository
	job       *AudioCleanup
	tenant    *domain.Tenant
}

func (s *AudioCleanupTestSuite) SetupTest() {
	s.mockS3 = new(mockObjectDeleter)
	s.mockAudio = new(mocks.AudioFileRepository)

	s.job = NewAudioCleanup(s.mockS3, "transquote-audio", time.Hour, logger.NewLogger("development"))
	s.job.newAudioRepo = func(tx *gorm.DB) repository.AudioFileRepository {
		return s.mockAudio
	}

	s.tenant = &domain.Tenant{ID: 1, Slug: "clinic_abc", SchemaName: "tenant_clinic_abc"}
}

func TestAudioCleanup(t *testing.T) {
	suite.Run(t, new(AudioCleanupTestSuite))
}

func (s *AudioCleanupTestSuite) TestRunTenant_DeletesObjectBeforeRow() {
	ctx := context.Background()
	files := []domain.AudioFile{
		{ID: "f1", StorageKey: "clinic_abc/q1/recording.mp3"},
		{ID: "f2", StorageKey: "clinic_abc/q2/recording.mp3"},
	}

	s.mockAudio.On("ListExpired", ctx, mock.AnythingOfType("time.Time")).Return(files, nil)
	s.mockS3.On("DeleteObject", ctx, mock.AnythingOfType("*s3.DeleteObjectInput")).
		Return(&s3.DeleteObjectOutput{}, nil)
	s.mockAudio.On("Delete", ctx, "f1").Return(nil)
	s.mockAudio.On("Delete", ctx, "f2").Return(nil)

	stats, err := s.job.RunTenant(ctx, s.tenant, nil)

	s.NoError(err)
	s.Equal(int64(2), stats["deleted"])
	s.Equal(int64(0), stats["delete_failed"])
	s.mockS3.AssertNumberOfCalls(s.T(), "DeleteObject", 2)
	s.mockAudio.AssertExpectations(s.T())
}

func (s *AudioCleanupTestSuite) TestRunTenant_KeepsRowWhenObjectDeleteFails() {
	ctx := context.Background()
	files := []domain.AudioFile{
		{ID: "f1", StorageKey: "clinic_abc/q1/recording.mp3"},
	}

	s.mockAudio.On("ListExpired", ctx, mock.AnythingOfType("time.Time")).Return(files, nil)
	s.mockS3.On("DeleteObject", ctx, mock.AnythingOfType("*s3.DeleteObjectInput")).
		Return(nil, errors.New("access denied"))

	stats, err := s.job.RunTenant(ctx, s.tenant, nil)

	s.NoError(err)
	s.Equal(int64(0), stats["deleted"])
	s.Equal(int64(1), stats["delete_failed"])
	// The row survives so the next run retries the object.
	s.mockAudio.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *AudioCleanupTestSuite) TestRunTenant_NothingExpired() {
	ctx := context.Background()

	s.mockAudio.On("ListExpired", ctx, mock.AnythingOfType("time.Time")).Return([]domain.AudioFile{}, nil)

	stats, err := s.job.RunTenant(ctx, s.tenant, nil)

	s.NoError(err)
	s.Equal(int64(0), stats["deleted"])
	s.mockS3.AssertNotCalled(s.T(), "DeleteObject", mock.Anything, mock.Anything)
}
