package handler

import (
	"net/http"

	"carspace/internal/services"
	"carspace/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type EstimatorHandler struct {
	service *services.EstimatorService
}

func NewEstimatorHandler(service *services.EstimatorService) *EstimatorHandler {
	return &EstimatorHandler{service: service}
}

func (h *EstimatorHandler) Estimate(c *gin.Context) {
	var req httpdto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	est, err := h.service.Estimate(services.EstimateInput{
		Make:      req.Make,
		Model:     req.Model,
		Year:      req.Year,
		Mileage:   req.Mileage,
		Condition: req.Condition,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(est))
}
