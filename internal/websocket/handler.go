package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"carspace/internal/events"
	"carspace/internal/services"
	"carspace/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	auth       *services.AuthService
	hub        *Hub
	authorizer *ChannelAuthorizer
}

func NewHandler(auth *services.AuthService, hub *Hub, authorizer *ChannelAuthorizer) *Handler {
	return &Handler{auth: auth, hub: hub, authorizer: authorizer}
}

type controlMessage struct {
	Action  string `json:"action"` // subscribe | unsubscribe
	Channel string `json:"channel"`
}

// Connect upgrades the request, subscribes the client to its own bell
// channel, and then processes subscribe/unsubscribe control messages.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	claims, err := h.auth.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, userID.String())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	h.hub.Subscribe(client, events.BellChannel(userID))
	go client.WriteLoop(ctx)

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg controlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "subscribe":
			ok, err := h.authorizer.CanSubscribe(c.Request.Context(), userID, claims.Role, msg.Channel)
			if err == nil && ok {
				h.hub.Subscribe(client, msg.Channel)
			}
		case "unsubscribe":
			h.hub.Unsubscribe(client, msg.Channel)
		}
	}

	h.hub.Unregister(client)
}
