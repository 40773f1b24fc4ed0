package booking

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/errors"
	"github.com/quickdoc/clinic-api/pkg/httputil"
)

// Service is the booking use case.
type Service interface {
	BookSlot(ctx context.Context, rawSlotID string) (*model.BookingConfirmation, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/book", h.BookSlot)
}

// BookSlot attempts the booking. Conflicts are terminal: the response
// tells the client the slot is taken and it is up to the client to
// re-query for an alternative.
func (h *Handler) BookSlot(c *gin.Context) {
	var req model.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			httputil.RespondWithError(c, errors.BadRequest("slot_id is required", err))
			return
		}
		httputil.RespondWithError(c, errors.BadRequest("invalid request body", err))
		return
	}

	confirmation, err := h.service.BookSlot(c.Request.Context(), req.SlotID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, confirmation)
}
