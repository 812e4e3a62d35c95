package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transquote/platform-api/internal/api/dto"
	"github.com/transquote/platform-api/internal/domain"
	"github.com/transquote/platform-api/internal/service"
	"github.com/transquote/platform-api/internal/utils"
)

//go:generate mockery --name QuoteService --output ../mocks
type QuoteService interface {
	Create(ctx context.Context, schemaName string, input service.CreateQuoteInput) (*domain.Quote, error)
	GetByID(ctx context.Context, schemaName, id string) (*domain.Quote, error)
	List(ctx context.Context, schemaName string, filter domain.QuoteFilter) ([]domain.Quote, error)
	GetPublic(ctx context.Context, schemaName, token string) (*domain.Quote, error)
	RegisterAudio(ctx context.Context, schemaName string, input service.RegisterAudioInput) (*domain.AudioFile, error)
}

type QuoteHandler struct {
	*BaseHandler
	service QuoteService
}

func NewQuoteHandler(service QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// CreateQuote drafts a quote in the session's tenant schema.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	session, err := utils.GetSessionFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "authentication required"})
		return
	}

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	quote, err := h.service.Create(h.RequestCtx(c), session.SchemaName, service.CreateQuoteInput{
		DurationMinutes: req.DurationMinutes,
		RatePerMinute:   req.RatePerMinute,
		PublicLinkTTL:   time.Duration(req.PublicLinkHours) * time.Hour,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// ListQuotes lists the tenant's quotes, optionally filtered by status.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	session, err := utils.GetSessionFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "authentication required"})
		return
	}

	filter := domain.QuoteFilter{
		Status: domain.QuoteStatus(c.Query("status")),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	quotes, err := h.service.List(h.RequestCtx(c), session.SchemaName, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	responses := make([]dto.QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = dto.NewQuoteResponse(&quotes[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetQuote fetches one quote by id from the session's tenant schema.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	session, err := utils.GetSessionFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "authentication required"})
		return
	}

	quote, err := h.service.GetByID(h.RequestCtx(c), session.SchemaName, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterAudio records an uploaded recording against a quote.
func (h *QuoteHandler) RegisterAudio(c *gin.Context) {
	session, err := utils.GetSessionFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "authentication required"})
		return
	}

	var req dto.RegisterAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	file, err := h.service.RegisterAudio(h.RequestCtx(c), session.SchemaName, service.RegisterAudioInput{
		QuoteID:     req.QuoteID,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		Retention:   time.Duration(req.RetentionDays) * 24 * time.Hour,
	})
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewAudioFileResponse(file))
}

// GetPublicQuote serves a quote through its public link, no session required.
// Expired and unknown tokens answer identically.
func (h *QuoteHandler) GetPublicQuote(c *gin.Context) {
	tenant, err := utils.GetTenantFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: "not found"})
		return
	}

	quote, err := h.service.GetPublic(h.RequestCtx(c), tenant.SchemaName, c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, dto.Error{Error: "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicQuoteResponse(quote))
}
