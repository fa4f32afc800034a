package handler

import (
	"errors"
	"net/http"

	"carspace/internal/transport/httpdto"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP statuses. Fan-out and other
// best-effort failures never reach here; only the primary operation's
// outcome decides the response.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, carspace_errors.ErrBadChatID),
		errors.Is(err, carspace_errors.ErrInvalidInput),
		errors.Is(err, carspace_errors.ErrInvalidStatus),
		errors.Is(err, carspace_errors.ErrUnknownVehicle):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "BAD_REQUEST"))
	case errors.Is(err, carspace_errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(err.Error(), "UNAUTHORIZED"))
	case errors.Is(err, carspace_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse(err.Error(), "FORBIDDEN"))
	case errors.Is(err, carspace_errors.ErrNotFound),
		errors.Is(err, carspace_errors.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	case errors.Is(err, carspace_errors.ErrConflict),
		errors.Is(err, carspace_errors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(err.Error(), "CONFLICT"))
	case errors.Is(err, carspace_errors.ErrNotUploaded):
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNAVAILABLE"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(message, "BAD_REQUEST"))
}
