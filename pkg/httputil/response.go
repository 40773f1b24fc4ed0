package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickdoc/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError sends an error response with a stable machine code
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	c.JSON(statusFor(appErr.Code), Response{
		Status:  "error",
		Code:    string(appErr.Code),
		Message: appErr.Message,
	})
}

// statusFor maps error codes to HTTP statuses. Conflict must stay
// distinguishable from not-found so clients can refresh slot state
// instead of rendering a 404 page.
func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.CodeBadRequest, errors.CodeInvalidScore:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeAlreadyBooked:
		return http.StatusConflict
	case errors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
