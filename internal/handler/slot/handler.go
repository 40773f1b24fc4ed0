package slot

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
	"github.com/quickdoc/clinic-api/pkg/httputil"
)

// AvailabilityService lists upcoming slots for a doctor.
type AvailabilityService interface {
	ListUpcomingSlots(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]*model.AppointmentSlot, error)
}

type Handler struct {
	availability AvailabilityService
}

func NewHandler(availability AvailabilityService) *Handler {
	return &Handler{availability: availability}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.ListSlots)
}

// ListSlots returns the doctor's upcoming slots, booked ones included
// so the client can render them disabled. The optional from parameter
// (RFC 3339) defaults to now.
func (h *Handler) ListSlots(c *gin.Context) {
	raw := c.Query("doctor_id")
	if raw == "" {
		httputil.RespondWithError(c, errors.BadRequest("doctor_id is required", nil))
		return
	}
	doctorID, err := uuid.Parse(raw)
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor_id", err))
		return
	}

	from := time.Now()
	if rawFrom := c.Query("from"); rawFrom != "" {
		from, err = time.Parse(time.RFC3339, rawFrom)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid from timestamp", err))
			return
		}
	}

	slots, err := h.availability.ListUpcomingSlots(c.Request.Context(), doctorID, from)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, slots)
}
