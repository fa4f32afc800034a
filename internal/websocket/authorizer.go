package websocket

import (
	"context"
	"errors"
	"strings"

	"carspace/internal/domain"
	"carspace/internal/events"
	"carspace/internal/repository"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
)

// ChannelAuthorizer decides which pub/sub channels a connected user may
// follow. It reuses the same participant rule as the HTTP chat endpoints.
type ChannelAuthorizer struct {
	convs repository.ConversationRepository
	rooms repository.RoomRepository
}

func NewChannelAuthorizer(convs repository.ConversationRepository, rooms repository.RoomRepository) *ChannelAuthorizer {
	return &ChannelAuthorizer{convs: convs, rooms: rooms}
}

func (a *ChannelAuthorizer) CanSubscribe(ctx context.Context, userID uuid.UUID, role, channel string) (bool, error) {
	// A user's own bell channel is always allowed.
	if channel == events.BellChannel(userID) {
		return true, nil
	}

	if convIDStr, ok := strings.CutPrefix(channel, "chat-"); ok {
		convID, err := uuid.Parse(convIDStr)
		if err != nil {
			return false, nil
		}
		conv, err := a.convs.GetByID(ctx, convID)
		if err != nil {
			if errors.Is(err, carspace_errors.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		if role == domain.RoleSuperAdmin || conv.UserID == userID {
			return true, nil
		}
		room, err := a.rooms.GetByID(ctx, conv.RoomID)
		if err != nil {
			return false, err
		}
		return room.AdminID == userID, nil
	}

	return false, nil
}
