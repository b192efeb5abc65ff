package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidMealKey),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidTheme),
		errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, service.ErrInvalidMessage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error. Unexpected errors are recorded on
// the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, types.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, types.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
}
