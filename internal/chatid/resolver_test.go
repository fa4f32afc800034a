package chatid_test

import (
	"testing"

	"carspace/internal/chatid"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitComposite_RecoversBothHalves(t *testing.T) {
	id := "11111111-1111-1111-1111-111111111111-22222222-2222-2222-2222-222222222222"

	got, err := chatid.SplitComposite(id)

	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", got.RoomID.String())
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", got.UserID.String())
}

func TestSplitComposite_RoundTripsRandomIDs(t *testing.T) {
	for i := 0; i < 20; i++ {
		roomID := uuid.New()
		userID := uuid.New()

		got, err := chatid.SplitComposite(roomID.String() + "-" + userID.String())

		require.NoError(t, err)
		assert.Equal(t, roomID, got.RoomID)
		assert.Equal(t, userID, got.UserID)
	}
}

func TestSplitComposite_RejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"single uuid", uuid.New().String()},
		{"too few segments", "a-b-c-d-e-f"},
		{"hyphen rich garbage", "x-x-x-x-x-x-x-x-x-x-x-x"},
		{"non hex halves", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz-zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"},
		{"truncated second half", uuid.New().String() + "-22222222-2222-2222-2222"},
		{"extra trailing segment", uuid.New().String() + "-" + uuid.New().String() + "-deadbeef"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chatid.SplitComposite(tc.in)
			assert.ErrorIs(t, err, carspace_errors.ErrBadChatID)
		})
	}
}

func TestIsConversationID(t *testing.T) {
	assert.True(t, chatid.IsConversationID(uuid.New().String()))
	assert.False(t, chatid.IsConversationID("not-a-uuid"))
	assert.False(t, chatid.IsConversationID(uuid.New().String()+"-"+uuid.New().String()))
}
