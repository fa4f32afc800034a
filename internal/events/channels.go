package events

import (
	"fmt"

	"github.com/google/uuid"
)

// ConversationChannel names the pub/sub channel carrying chat events for one
// conversation. Clients subscribe to it by convention.
func ConversationChannel(conversationID uuid.UUID) string {
	return fmt.Sprintf("chat-%s", conversationID)
}

// BellChannel names the per-user channel for "bell" notifications.
func BellChannel(userID uuid.UUID) string {
	return fmt.Sprintf("bell:%s", userID)
}
