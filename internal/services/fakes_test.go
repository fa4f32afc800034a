package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"carspace/internal/domain"
	"carspace/internal/repository"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeConversationRepo struct {
	mu         sync.Mutex
	convs      map[uuid.UUID]domain.Conversation
	resetCalls int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[uuid.UUID]domain.Conversation)}
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		return domain.Conversation{}, carspace_errors.ErrNotFound
	}
	return conv, nil
}

func (r *fakeConversationRepo) GetByRoomAndUser(_ context.Context, roomID, userID uuid.UUID) (domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range r.convs {
		if conv.RoomID == roomID && conv.UserID == userID {
			return conv, nil
		}
	}
	return domain.Conversation{}, carspace_errors.ErrNotFound
}

func (r *fakeConversationRepo) FindOrCreate(ctx context.Context, roomID, userID uuid.UUID) (domain.Conversation, error) {
	if conv, err := r.GetByRoomAndUser(ctx, roomID, userID); err == nil {
		return conv, nil
	}
	conv := domain.Conversation{
		ID:        uuid.New(),
		RoomID:    roomID,
		UserID:    userID,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	r.convs[conv.ID] = conv
	r.mu.Unlock()
	return conv, nil
}

func (r *fakeConversationRepo) TouchLastMessage(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		return carspace_errors.ErrNotFound
	}
	conv.LastMessageAt = at
	r.convs[id] = conv
	return nil
}

func (r *fakeConversationRepo) IncrementUnread(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		return carspace_errors.ErrNotFound
	}
	conv.UnreadCount++
	r.convs[id] = conv
	return nil
}

func (r *fakeConversationRepo) ResetUnread(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetCalls++
	conv, ok := r.convs[id]
	if !ok {
		return carspace_errors.ErrNotFound
	}
	conv.UnreadCount = 0
	r.convs[id] = conv
	return nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.convs[id]; !ok {
		return carspace_errors.ErrNotFound
	}
	delete(r.convs, id)
	return nil
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Conversation
	for _, conv := range r.convs {
		if conv.UserID == userID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) ListByRooms(_ context.Context, roomIDs []uuid.UUID) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Conversation
	for _, conv := range r.convs {
		if roomIDs == nil {
			out = append(out, conv)
			continue
		}
		for _, roomID := range roomIDs {
			if conv.RoomID == roomID {
				out = append(out, conv)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) CountByRooms(ctx context.Context, roomIDs []uuid.UUID) (int64, error) {
	convs, err := r.ListByRooms(ctx, roomIDs)
	return int64(len(convs)), err
}

func (r *fakeConversationRepo) SumUnreadByRooms(ctx context.Context, roomIDs []uuid.UUID) (int64, error) {
	convs, err := r.ListByRooms(ctx, roomIDs)
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, conv := range convs {
		sum += int64(conv.UnreadCount)
	}
	return sum, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID, _ int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkReadExcept(_ context.Context, conversationID, viewerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var flipped int64
	for i, m := range r.messages {
		if m.ConversationID == conversationID && m.SenderID != viewerID && !m.IsRead {
			r.messages[i].IsRead = true
			flipped++
		}
	}
	return flipped, nil
}

func (r *fakeMessageRepo) DeleteByConversation(_ context.Context, conversationID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ConversationID != conversationID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]domain.Room
}

func newFakeRoomRepo(rooms ...domain.Room) *fakeRoomRepo {
	r := &fakeRoomRepo{rooms: make(map[uuid.UUID]domain.Room)}
	for _, room := range rooms {
		r.rooms[room.ID] = room
	}
	return r
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; !ok {
		return carspace_errors.ErrNotFound
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, carspace_errors.ErrNotFound
	}
	return room, nil
}

func (r *fakeRoomRepo) List(_ context.Context, _ bool, _, _ int) ([]domain.Room, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Room
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRoomRepo) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Room
	for _, room := range r.rooms {
		if room.AdminID == adminID {
			out = append(out, room)
		}
	}
	return out, nil
}

type fakeOutboxRepo struct {
	mu         sync.Mutex
	events     []domain.OutboxEvent
	failCreate bool
}

func (r *fakeOutboxRepo) Create(_ context.Context, _ *gorm.DB, ev *domain.OutboxEvent) error {
	if r.failCreate {
		return errors.New("outbox unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Status == "" {
		ev.Status = domain.OutboxPending
	}
	r.events = append(r.events, *ev)
	return nil
}

func (r *fakeOutboxRepo) GetPending(_ context.Context, limit int) ([]domain.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OutboxEvent
	for _, ev := range r.events {
		if ev.Status == domain.OutboxPending {
			out = append(out, ev)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOutboxRepo) MarkProcessing(_ context.Context, id uuid.UUID) error {
	return r.setStatus(id, domain.OutboxProcessing)
}

func (r *fakeOutboxRepo) MarkCompleted(_ context.Context, id uuid.UUID) error {
	return r.setStatus(id, domain.OutboxCompleted)
}

func (r *fakeOutboxRepo) MarkFailed(_ context.Context, id uuid.UUID, _ string) error {
	return r.setStatus(id, domain.OutboxFailed)
}

func (r *fakeOutboxRepo) IncrementRetry(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].RetryCount++
			r.events[i].Status = domain.OutboxPending
			return nil
		}
	}
	return carspace_errors.ErrNotFound
}

func (r *fakeOutboxRepo) setStatus(id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].Status = status
			return nil
		}
	}
	return carspace_errors.ErrNotFound
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, carspace_errors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, carspace_errors.ErrNotFound
}

type fakeCarRepo struct {
	mu   sync.Mutex
	cars map[uuid.UUID]domain.Car
}

func newFakeCarRepo(cars ...domain.Car) *fakeCarRepo {
	r := &fakeCarRepo{cars: make(map[uuid.UUID]domain.Car)}
	for _, c := range cars {
		r.cars[c.ID] = c
	}
	return r
}

func (r *fakeCarRepo) Create(_ context.Context, c *domain.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars[c.ID] = *c
	return nil
}

func (r *fakeCarRepo) Update(_ context.Context, c domain.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[c.ID]; !ok {
		return carspace_errors.ErrNotFound
	}
	r.cars[c.ID] = c
	return nil
}

func (r *fakeCarRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[id]; !ok {
		return carspace_errors.ErrNotFound
	}
	delete(r.cars, id)
	return nil
}

func (r *fakeCarRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return domain.Car{}, carspace_errors.ErrNotFound
	}
	return c, nil
}

func (r *fakeCarRepo) List(_ context.Context, _ repository.CarFilter, _, _ int) ([]domain.Car, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Car
	for _, c := range r.cars {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) CountByStatus(_ context.Context, _ []uuid.UUID) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64)
	for _, c := range r.cars {
		out[c.Status]++
	}
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, carspace_errors.ErrNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return carspace_errors.ErrNotFound
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByRooms(_ context.Context, roomIDs []uuid.UUID, _ int) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if roomIDs == nil {
			out = append(out, b)
			continue
		}
		for _, roomID := range roomIDs {
			if b.RoomID == roomID {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context, _ []uuid.UUID) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64)
	for _, b := range r.bookings {
		out[b.Status]++
	}
	return out, nil
}

func (r *fakeBookingRepo) SumAmountByStatus(_ context.Context, _ []uuid.UUID, status string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, b := range r.bookings {
		if b.Status == status {
			sum += b.Amount
		}
	}
	return sum, nil
}

var _ repository.ConversationRepository = (*fakeConversationRepo)(nil)
var _ repository.MessageRepository = (*fakeMessageRepo)(nil)
var _ repository.RoomRepository = (*fakeRoomRepo)(nil)
var _ repository.OutboxRepository = (*fakeOutboxRepo)(nil)
var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.CarRepository = (*fakeCarRepo)(nil)
var _ repository.BookingRepository = (*fakeBookingRepo)(nil)
