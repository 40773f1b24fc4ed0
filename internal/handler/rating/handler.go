package rating

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
	"github.com/quickdoc/clinic-api/pkg/httputil"
)

// Service is the rating ledger surface the handler needs.
type Service interface {
	Submit(ctx context.Context, doctorID uuid.UUID, req *model.SubmitRatingRequest) (*model.RatingStats, error)
	AggregateFor(ctx context.Context, doctorID uuid.UUID) (*model.RatingStats, error)
	AggregatesFor(ctx context.Context, doctorIDs []uuid.UUID) ([]*model.RatingStats, error)
	ListFor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctors/:id/ratings", h.GetDoctorRatings)
	rg.POST("/doctors/:id/ratings", h.SubmitRating)
	rg.GET("/ratings/stats", h.BatchStats)
}

// GetDoctorRatings returns the aggregate together with the most recent
// ratings, newest first.
func (h *Handler) GetDoctorRatings(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}

	stats, err := h.service.AggregateFor(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	ratings, err := h.service.ListFor(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"stats":   stats,
		"ratings": ratings,
	})
}

func (h *Handler) SubmitRating(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}

	var req model.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request body", err))
		return
	}

	stats, err := h.service.Submit(c.Request.Context(), doctorID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, stats)
}

// BatchStats serves the directory enrichment: one bulk aggregate read
// for a comma-separated id list.
func (h *Handler) BatchStats(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		httputil.RespondWithError(c, errors.BadRequest("ids is required", nil))
		return
	}

	var doctorIDs []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID in ids", err))
			return
		}
		doctorIDs = append(doctorIDs, id)
	}

	stats, err := h.service.AggregatesFor(c.Request.Context(), doctorIDs)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, stats)
}
