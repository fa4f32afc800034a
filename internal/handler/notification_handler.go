package handler

import (
	"net/http"

	"carspace/internal/repository"
	"carspace/internal/services"
	"carspace/internal/transport/httpdto"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
)

const notificationFeedLimit = 50

type NotificationHandler struct {
	repo repository.NotificationRepository
}

func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	notifications, err := h.repo.ListByUser(ctx, id.UserID, notificationFeedLimit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToNotificationResponses(notifications)))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	if err := h.repo.MarkAllRead(ctx, id.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"read": true}))
}
