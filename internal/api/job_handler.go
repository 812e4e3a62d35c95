package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/api/dto"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/repository"
	"github.com/transquote/platform-api/pkg/utils"
)

// JobHandler exposes the maintenance audit trail to the admin console.
type JobHandler struct {
	*BaseHandler
	repo       repository.JobExecutionRepository
	stuckAfter time.Duration
}

func NewJobHandler(repo repository.JobExecutionRepository, stuckAfter time.Duration) *JobHandler {
	return &JobHandler{repo: repo, stuckAfter: stuckAfter}
}

// ListExecutions returns job executions, newest first. Filters: job, status,
// since (RFC3339 or YYYY-MM-DD), page, page_size.
func (h *JobHandler) ListExecutions(c *gin.Context) {
	filter := domain.JobExecutionFilter{
		JobName: c.Query("job"),
		Status:  domain.JobStatus(c.Query("status")),
	}

	if since := c.Query("since"); since != "" {
		t, err := utils.ParseUserTime(since, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
			return
		}
		filter.Since = t
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	executions, err := h.repo.List(h.RequestCtx(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	responses := make([]dto.JobExecutionResponse, len(executions))
	for i := range executions {
		responses[i] = dto.NewJobExecutionResponse(&executions[i])
	}
	c.JSON(http.StatusOK, responses)
}

// ListStuck flags running rows older than the stuck threshold: the signal of
// a run that crashed mid-scan and will never complete on its own.
func (h *JobHandler) ListStuck(c *gin.Context) {
	threshold := h.stuckAfter
	if raw := c.Query("older_than"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid older_than duration"})
			return
		}
		threshold = parsed
	}

	executions, err := h.repo.ListStuck(h.RequestCtx(c), time.Now().Add(-threshold))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	responses := make([]dto.JobExecutionResponse, len(executions))
	for i := range executions {
		responses[i] = dto.NewJobExecutionResponse(&executions[i])
	}
	c.JSON(http.StatusOK, responses)
}
