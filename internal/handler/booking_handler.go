package handler

import (
	"net/http"

	"carspace/internal/services"
	"carspace/internal/transport/httpdto"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	var req httpdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		badRequest(c, "invalid car_id")
		return
	}

	booking, err := h.service.Create(ctx, id, services.CreateBookingInput{
		CarID:    carID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Amount:   req.Amount,
		Method:   req.Method,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.ToBookingResponse(booking)))
}

func (h *BookingHandler) ListOwn(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	bookings, err := h.service.ListOwn(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToBookingResponses(bookings)))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid booking id")
		return
	}

	var req httpdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	booking, err := h.service.UpdateStatus(ctx, id, bookingID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToBookingResponse(booking)))
}
