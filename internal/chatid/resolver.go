// Package chatid decodes the chat path parameter accepted by the admin chat
// endpoints. The parameter is either a conversation id, or a composite
// "<roomID>-<userID>" string where both halves are canonical UUIDs.
package chatid

import (
	"strings"

	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
)

// canonicalLen is the length of a canonical textual UUID.
const canonicalLen = 36

// hyphensPerUUID is how many hyphens a canonical UUID contains, so the
// fifth hyphen of a composite id marks the boundary between the two halves.
const hyphensPerUUID = 4

// Composite holds the two identifiers recovered from a composite chat id.
type Composite struct {
	RoomID uuid.UUID
	UserID uuid.UUID
}

// IsConversationID reports whether s parses as a single canonical UUID,
// meaning it should be treated as a direct conversation id.
func IsConversationID(s string) bool {
	if len(s) != canonicalLen {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// SplitComposite splits a composite "<roomID>-<userID>" chat id at the fifth
// hyphen. Both halves must be canonical UUIDs; anything else is rejected
// instead of being passed downstream as garbage.
func SplitComposite(s string) (Composite, error) {
	// Two concatenated canonical UUIDs produce ten hyphen-delimited segments.
	if len(strings.Split(s, "-")) < 2*hyphensPerUUID+2 {
		return Composite{}, carspace_errors.ErrBadChatID
	}

	boundary := -1
	seen := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		seen++
		if seen == hyphensPerUUID+1 {
			boundary = i
			break
		}
	}
	if boundary < 0 {
		return Composite{}, carspace_errors.ErrBadChatID
	}

	roomID, err := parseCanonical(s[:boundary])
	if err != nil {
		return Composite{}, carspace_errors.ErrBadChatID
	}
	userID, err := parseCanonical(s[boundary+1:])
	if err != nil {
		return Composite{}, carspace_errors.ErrBadChatID
	}

	return Composite{RoomID: roomID, UserID: userID}, nil
}

func parseCanonical(s string) (uuid.UUID, error) {
	if len(s) != canonicalLen {
		return uuid.Nil, carspace_errors.ErrBadChatID
	}
	return uuid.Parse(s)
}
