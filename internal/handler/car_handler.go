package handler

import (
	"net/http"

	"carspace/internal/repository"
	"carspace/internal/services"
	"carspace/internal/transport/httpdto"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarHandler struct {
	service *services.CarService
}

func NewCarHandler(service *services.CarService) *CarHandler {
	return &CarHandler{service: service}
}

func (h *CarHandler) List(c *gin.Context) {
	filter := repository.CarFilter{
		Make:   c.Query("make"),
		Status: c.Query("status"),
	}
	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		roomID, err := uuid.Parse(roomIDStr)
		if err != nil {
			badRequest(c, "invalid room_id")
			return
		}
		filter.RoomID = uuid.NullUUID{UUID: roomID, Valid: true}
	}

	page, limit := pagination(c)
	cars, total, err := h.service.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PagedResponse[httpdto.CarResponse]{
		Items: httpdto.ToCarResponses(cars),
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// ListByRoom handles GET /rooms/:id/cars, the showroom inventory view.
func (h *CarHandler) ListByRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid room id")
		return
	}

	filter := repository.CarFilter{
		Status: c.Query("status"),
		RoomID: uuid.NullUUID{UUID: roomID, Valid: true},
	}

	page, limit := pagination(c)
	cars, total, err := h.service.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PagedResponse[httpdto.CarResponse]{
		Items: httpdto.ToCarResponses(cars),
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

func (h *CarHandler) GetByID(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid car id")
		return
	}

	car, err := h.service.GetByID(c.Request.Context(), carID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToCarResponse(car)))
}

func (h *CarHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	var req httpdto.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		badRequest(c, "invalid room_id")
		return
	}

	car, err := h.service.Create(ctx, id, services.CarInput{
		RoomID:   roomID,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Mileage:  req.Mileage,
		Price:    req.Price,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.ToCarResponse(car)))
}

func (h *CarHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid car id")
		return
	}

	var req httpdto.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	car, err := h.service.Update(ctx, id, carID, services.UpdateCarInput{
		Mileage:  req.Mileage,
		Price:    req.Price,
		Status:   req.Status,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToCarResponse(car)))
}

func (h *CarHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid car id")
		return
	}

	if err := h.service.Delete(ctx, id, carID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"deleted": true}))
}
