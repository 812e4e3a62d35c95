package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/transquote/platform-api/internal/api/dto"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/mocks"
)

type JobHandlerTestSuite struct {
	suite.Suite
	mockRepo *mocks.JobExecutionRepository
	handler  *JobHandler
}

func (s *JobHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockRepo = new(mocks.JobExecutionRepository)
	s.handler = NewJobHandler(s.mockRepo, 2*time.Hour)
}

func TestJobHandler(t *testing.T) {
	suite.Run(t, new(JobHandlerTestSuite))
}

func (s *JobHandlerTestSuite) TestListExecutions_Filters() {
	completed := time.Now()
	executions := []domain.JobExecution{
		{
			ID:          3,
			JobName:     "audio_cleanup",
			Status:      domain.JobStatusSuccess,
			StartedAt:   completed.Add(-2 * time.Minute),
			CompletedAt: &completed,
			DurationMs:  120000,
			Stats:       domain.JobStats{"deleted": 12},
		},
	}

	s.mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.JobExecutionFilter) bool {
		return f.JobName == "audio_cleanup" && f.Status == domain.JobStatusSuccess && f.Page == 1 && f.PageSize == 50
	})).Return(executions, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/admin/jobs/executions?job=audio_cleanup&status=success", nil)

	s.handler.ListExecutions(c)

	s.Equal(http.StatusOK, w.Code)
	var response []dto.JobExecutionResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response, 1)
	s.Equal(int64(12), response[0].Stats["deleted"])
	s.mockRepo.AssertExpectations(s.T())
}

func (s *JobHandlerTestSuite) TestListExecutions_BadSince() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/admin/jobs/executions?since=not-a-date", nil)

	s.handler.ListExecutions(c)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockRepo.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything)
}

func (s *JobHandlerTestSuite) TestListStuck_DefaultThreshold() {
	stuck := []domain.JobExecution{
		{ID: 1, JobName: "cost_update", Status: domain.JobStatusRunning, StartedAt: time.Now().Add(-5 * time.Hour)},
	}

	s.mockRepo.On("ListStuck", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		// Default threshold is 2h, so the cutoff sits about 2h in the past.
		return time.Since(cutoff) > 119*time.Minute && time.Since(cutoff) < 121*time.Minute
	})).Return(stuck, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/admin/jobs/stuck", nil)

	s.handler.ListStuck(c)

	s.Equal(http.StatusOK, w.Code)
	var response []dto.JobExecutionResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response, 1)
	s.Equal("running", response[0].Status)
}

func (s *JobHandlerTestSuite) TestListStuck_BadDuration() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/admin/jobs/stuck?older_than=yesterday", nil)

	s.handler.ListStuck(c)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockRepo.AssertNotCalled(s.T(), "ListStuck", mock.Anything, mock.Anything)
}
