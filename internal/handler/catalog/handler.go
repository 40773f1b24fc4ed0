package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickdoc/clinic-api/internal/model"
	"github.com/quickdoc/clinic-api/pkg/httputil"
)

// Service is the catalog surface the handler needs.
type Service interface {
	ListSpecialties(ctx context.Context) ([]*model.Specialty, error)
	ListCities(ctx context.Context) ([]string, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/specialties", h.ListSpecialties)
	rg.GET("/cities", h.ListCities)
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.service.ListSpecialties(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, specialties)
}

func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cities)
}
