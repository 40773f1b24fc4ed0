package doctor

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/internal/service/search"
	"github.com/quickdoc/clinic-api/pkg/errors"
	"github.com/quickdoc/clinic-api/pkg/httputil"
)

// SearchService resolves the directory result set.
type SearchService interface {
	Search(ctx context.Context, q search.Query) ([]*model.DoctorSearchResult, error)
}

// LocationService lists a doctor's practice addresses.
type LocationService interface {
	LocationsFor(ctx context.Context, doctorID uuid.UUID) ([]*model.PracticeAddress, error)
}

// AvailabilityService answers the next-free-slot enrichment.
type AvailabilityService interface {
	NextFreeSlot(ctx context.Context, doctorID uuid.UUID, from time.Time) (*model.AppointmentSlot, error)
}

type Handler struct {
	search       SearchService
	locations    LocationService
	availability AvailabilityService
}

func NewHandler(search SearchService, locations LocationService, availability AvailabilityService) *Handler {
	return &Handler{search: search, locations: locations, availability: availability}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctors", h.SearchDoctors)
	rg.GET("/doctors/:id/locations", h.ListLocations)
	rg.GET("/doctors/:id/next-slot", h.NextFreeSlot)
}

func (h *Handler) SearchDoctors(c *gin.Context) {
	var q search.Query

	if raw := c.Query("specialty_id"); raw != "" {
		specialtyID, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid specialty_id", err))
			return
		}
		q.SpecialtyID = &specialtyID
	}
	q.City = c.Query("city")
	q.NameQuery = c.Query("q")

	doctors, err := h.search.Search(c.Request.Context(), q)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, doctors)
}

func (h *Handler) ListLocations(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}

	addresses, err := h.locations.LocationsFor(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, addresses)
}

// NextFreeSlot returns the earliest free slot from now on, or null when
// the doctor has none.
func (h *Handler) NextFreeSlot(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}

	slot, err := h.availability.NextFreeSlot(c.Request.Context(), doctorID, time.Now())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, slot)
}
