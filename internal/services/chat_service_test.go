package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"carspace/internal/domain"
	"carspace/internal/events"
	"carspace/internal/services"
	carspace_errors "carspace/pkg/errors"
	"carspace/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	svc    *services.ChatService
	convs  *fakeConversationRepo
	msgs   *fakeMessageRepo
	rooms  *fakeRoomRepo
	outbox *fakeOutboxRepo

	room    domain.Room
	adminID uuid.UUID
	userID  uuid.UUID
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	adminID := uuid.New()
	room := domain.Room{
		ID:       uuid.New(),
		Name:     "Downtown Motors",
		AdminID:  adminID,
		IsActive: true,
	}

	convs := newFakeConversationRepo()
	msgs := &fakeMessageRepo{}
	rooms := newFakeRoomRepo(room)
	outbox := &fakeOutboxRepo{}

	return &chatFixture{
		svc:     services.NewChatService(nil, convs, msgs, rooms, outbox, logger.New("debug")),
		convs:   convs,
		msgs:    msgs,
		rooms:   rooms,
		outbox:  outbox,
		room:    room,
		adminID: adminID,
		userID:  uuid.New(),
	}
}

func (f *chatFixture) compositeID() string {
	return f.room.ID.String() + "-" + f.userID.String()
}

func (f *chatFixture) user() services.Identity {
	return services.Identity{UserID: f.userID, Role: domain.RoleUser}
}

func (f *chatFixture) admin() services.Identity {
	return services.Identity{UserID: f.adminID, Role: domain.RoleAdmin}
}

func TestResolveChatCompositeCreatesOnce(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, room, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)
	assert.Equal(t, f.room.ID, room.ID)
	assert.Equal(t, f.room.ID, first.RoomID)
	assert.Equal(t, f.userID, first.UserID)

	second, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.convs.convs, 1)
}

func TestResolveChatCanonicalID(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	created, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	found, room, err := f.svc.ResolveChat(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, f.room.ID, room.ID)
}

func TestResolveChatUnknownRoom(t *testing.T) {
	f := newChatFixture(t)

	missing := uuid.New().String() + "-" + f.userID.String()
	_, _, err := f.svc.ResolveChat(context.Background(), missing)
	assert.True(t, errors.Is(err, carspace_errors.ErrNotFound))
	assert.Empty(t, f.convs.convs)
}

func TestResolveChatMalformedID(t *testing.T) {
	f := newChatFixture(t)

	for _, chatID := range []string{
		"",
		"not-a-chat-id",
		f.room.ID.String(),
		f.room.ID.String() + "-garbage",
	} {
		_, _, err := f.svc.ResolveChat(context.Background(), chatID)
		assert.True(t, errors.Is(err, carspace_errors.ErrBadChatID), "chatID %q", chatID)
	}
}

func TestPostMessageAuthorization(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	cases := []struct {
		name    string
		id      services.Identity
		wantErr error
	}{
		{"conversation user", f.user(), nil},
		{"room admin", f.admin(), nil},
		{"superadmin", services.Identity{UserID: uuid.New(), Role: domain.RoleSuperAdmin}, nil},
		{"stranger", services.Identity{UserID: uuid.New(), Role: domain.RoleUser}, carspace_errors.ErrForbidden},
		{"other admin", services.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}, carspace_errors.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.PostMessage(ctx, tc.id, services.PostMessageInput{
				ConversationID: conv.ID,
				Body:           "hello",
			})
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tc.wantErr))
			}
		})
	}
}

func TestPostMessageValidation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	_, err = f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
		Body:           "hi",
		Type:           "carrier-pigeon",
	})
	assert.True(t, errors.Is(err, carspace_errors.ErrInvalidInput))

	_, err = f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
	})
	assert.True(t, errors.Is(err, carspace_errors.ErrInvalidInput))
}

func TestPostMessageToMissingConversation(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.PostMessage(context.Background(), f.user(), services.PostMessageInput{
		ConversationID: uuid.New(),
		Body:           "hello",
	})
	assert.True(t, errors.Is(err, carspace_errors.ErrNotFound))
	assert.Empty(t, f.msgs.messages)
}

func TestPostMessageEnqueuesFanout(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	msg, err := f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
		Body:           "is the corolla still available?",
	})
	require.NoError(t, err)

	require.Len(t, f.outbox.events, 1)
	ev := f.outbox.events[0]
	assert.Equal(t, events.EventChatMessageNew, ev.EventType)
	assert.Equal(t, msg.ID.String(), ev.AggregateID)

	var payload events.ChatMessagePayload
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, conv.ID, payload.ConversationID)
	assert.Equal(t, f.userID, payload.SenderID)
	// The sender is excluded from the recipient list.
	assert.Equal(t, []uuid.UUID{f.adminID}, payload.Recipients)
}

func TestPostMessageFanoutFailureDoesNotFailRequest(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	f.outbox.failCreate = true
	msg, err := f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
		Body:           "hello",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Len(t, f.msgs.messages, 1)
}

func TestGetMessagesMarksRead(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	_, err = f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
		Body:           "first",
	})
	require.NoError(t, err)
	_, err = f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
		Body:           "second",
	})
	require.NoError(t, err)

	// The sender viewing its own messages flips nothing.
	msgs, err := f.svc.GetMessages(ctx, f.user(), conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.False(t, m.IsRead)
	}
	assert.Equal(t, 0, f.convs.resetCalls)

	// The admin viewing them marks them read and resets the counter.
	msgs, err = f.svc.GetMessages(ctx, f.admin(), conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.True(t, m.IsRead)
	}
	assert.Equal(t, 1, f.convs.resetCalls)
}

func TestGetMessagesForbidden(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	stranger := services.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	_, err = f.svc.GetMessages(ctx, stranger, conv.ID)
	assert.True(t, errors.Is(err, carspace_errors.ErrForbidden))
}

func TestDeleteConversation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)

	_, err = f.svc.PostMessage(ctx, f.user(), services.PostMessageInput{
		ConversationID: conv.ID,
		Body:           "hello",
	})
	require.NoError(t, err)

	// The conversation's own user may read but not delete.
	err = f.svc.DeleteConversation(ctx, f.user(), conv.ID)
	assert.True(t, errors.Is(err, carspace_errors.ErrForbidden))

	require.NoError(t, f.svc.DeleteConversation(ctx, f.admin(), conv.ID))
	assert.Empty(t, f.msgs.messages)
	assert.Empty(t, f.convs.convs)
}

func TestListAdminConversations(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	otherRoom := domain.Room{ID: uuid.New(), Name: "Rival Autos", AdminID: uuid.New(), IsActive: true}
	require.NoError(t, f.rooms.Create(ctx, &otherRoom))

	_, _, err := f.svc.ResolveChat(ctx, f.compositeID())
	require.NoError(t, err)
	_, _, err = f.svc.ResolveChat(ctx, otherRoom.ID.String()+"-"+uuid.New().String())
	require.NoError(t, err)

	own, err := f.svc.ListAdminConversations(ctx, f.admin())
	require.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Equal(t, f.room.ID, own[0].RoomID)

	all, err := f.svc.ListAdminConversations(ctx, services.Identity{UserID: uuid.New(), Role: domain.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := f.svc.ListAdminConversations(ctx, services.Identity{UserID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, none)
}
