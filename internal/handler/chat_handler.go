package handler

import (
	"net/http"

	"carspace/internal/services"
	"carspace/internal/transport/httpdto"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler serves the chat endpoints. User-facing routes address a
// conversation by its id; the admin route additionally accepts the composite
// "<roomID>-<userID>" form produced by the storefront and lazily creates the
// conversation on first contact.
type ChatHandler struct {
	service *services.ChatService
	uploads *services.UploadService
}

func NewChatHandler(service *services.ChatService, uploads *services.UploadService) *ChatHandler {
	return &ChatHandler{service: service, uploads: uploads}
}

// GetMessages handles GET /chat?conversationId=... Viewing marks the other
// side's messages read.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	conversationID, err := uuid.Parse(c.Query("conversationId"))
	if err != nil {
		badRequest(c, "invalid conversationId")
		return
	}

	msgs, err := h.service.GetMessages(ctx, id, conversationID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToMessageResponses(msgs)))
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	var req httpdto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	conversationID, err := uuid.Parse(req.ConversationID)
	if err != nil {
		badRequest(c, "invalid conversationId")
		return
	}

	input, err := h.buildMessageInput(conversationID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	msg, err := h.service.PostMessage(ctx, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.ToMessageResponse(msg)))
}

// DeleteChat removes a conversation and its messages; room admin or
// superadmin only.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	var req httpdto.DeleteChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	conversationID, err := uuid.Parse(req.ConversationID)
	if err != nil {
		badRequest(c, "invalid conversationId")
		return
	}

	if err := h.service.DeleteConversation(ctx, id, conversationID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"deleted": true}))
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	convs, err := h.service.ListConversations(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToConversationResponses(convs)))
}

// AdminGetChat handles GET /admin/chats/:chatId where :chatId is either a
// conversation id or the composite room-user form.
func (h *ChatHandler) AdminGetChat(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	conv, _, err := h.service.ResolveChat(ctx, c.Param("chatId"))
	if err != nil {
		writeError(c, err)
		return
	}

	msgs, err := h.service.GetMessages(ctx, id, conv.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatResponse{
		Conversation: httpdto.ToConversationResponse(conv),
		Messages:     httpdto.ToMessageResponses(msgs),
	}))
}

func (h *ChatHandler) AdminPostChat(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := services.IdentityFromContext(ctx)
	if !ok {
		writeError(c, carspace_errors.ErrUnauthorized)
		return
	}

	var req httpdto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	conv, _, err := h.service.ResolveChat(ctx, c.Param("chatId"))
	if err != nil {
		writeError(c, err)
		return
	}

	input, err := h.buildMessageInput(conv.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	msg, err := h.service.PostMessage(ctx, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.ToMessageResponse(msg)))
}

func (h *ChatHandler) buildMessageInput(conversationID uuid.UUID, req httpdto.PostMessageRequest) (services.PostMessageInput, error) {
	carID := uuid.NullUUID{}
	if req.CarID != "" {
		parsed, err := uuid.Parse(req.CarID)
		if err != nil {
			return services.PostMessageInput{}, carspace_errors.ErrInvalidInput
		}
		carID = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	fileURL := ""
	if req.FileID != "" && h.uploads != nil {
		fileURL = h.uploads.FileURL(req.FileID)
	}

	return services.PostMessageInput{
		ConversationID: conversationID,
		Body:           req.Message,
		Type:           req.MessageType,
		CarID:          carID,
		FileURL:        fileURL,
		FileName:       req.FileName,
		FileType:       req.FileType,
	}, nil
}
