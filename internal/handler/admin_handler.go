package handler

import (
	"net/http"

	"carspace/internal/services"
	"carspace/internal/transport/httpdto"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the staff-only surface: the cross-room conversation
// list and the analytics dashboard.
type AdminHandler struct {
	chats     *services.ChatService
	analytics *services.AnalyticsService
}

func NewAdminHandler(chats *services.ChatService, analytics *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{chats: chats, analytics: analytics}
}

func (h *AdminHandler) ListChats(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	convs, err := h.chats.ListAdminConversations(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToConversationResponses(convs)))
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	dashboard, err := h.analytics.Dashboard(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(dashboard))
}
