package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carspace/internal/domain"
	"carspace/internal/events"
	"carspace/internal/notify"
	"carspace/internal/repository"
	"carspace/pkg/logger"

	"github.com/google/uuid"
)

// Processor drains pending outbox events and performs the fan-out channels
// for each one: realtime publish, delivery-status publish, external push,
// notification row, and per-user bell publish. Channels are isolated from
// each other; a failing channel marks the event for retry but never blocks
// the remaining channels.
type Processor struct {
	repo          repository.OutboxRepository
	notifications repository.NotificationRepository
	publisher     events.Publisher
	push          notify.PushSender
	log           *logger.Logger
	clock         func() time.Time
	batchSize     int
	interval      time.Duration
	maxRetries    int
}

func NewProcessor(
	repo repository.OutboxRepository,
	notifications repository.NotificationRepository,
	publisher events.Publisher,
	push notify.PushSender,
	log *logger.Logger,
	batchSize int,
	interval time.Duration,
	maxRetries int,
) *Processor {
	return &Processor{
		repo:          repo,
		notifications: notifications,
		publisher:     publisher,
		push:          push,
		log:           log,
		clock:         time.Now,
		batchSize:     batchSize,
		interval:      interval,
		maxRetries:    maxRetries,
	}
}

func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ProcessBatch(ctx)
		}
	}
}

func (p *Processor) ProcessBatch(ctx context.Context) {
	batch, err := p.repo.GetPending(ctx, p.batchSize)
	if err != nil || len(batch) == 0 {
		return
	}

	for _, ev := range batch {
		if ev.RetryCount >= p.maxRetries {
			_ = p.repo.MarkFailed(ctx, ev.ID, "max retries exceeded")
			continue
		}
		if err := p.repo.MarkProcessing(ctx, ev.ID); err != nil {
			continue
		}

		if err := p.dispatch(ctx, ev); err != nil {
			p.log.Errorf("outbox event %s: %v", ev.ID, err)
			_ = p.repo.IncrementRetry(ctx, ev.ID)
			continue
		}
		_ = p.repo.MarkCompleted(ctx, ev.ID)
	}
}

func (p *Processor) dispatch(ctx context.Context, ev domain.OutboxEvent) error {
	switch ev.EventType {
	case events.EventChatMessageNew:
		var payload events.ChatMessagePayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return p.fanOutMessage(ctx, payload)
	default:
		return fmt.Errorf("unknown event type %q", ev.EventType)
	}
}

// fanOutMessage runs every delivery channel even when earlier ones fail, and
// reports an error only so the whole event gets retried. Redelivery is
// at-least-once; recipients tolerate duplicate notifications.
func (p *Processor) fanOutMessage(ctx context.Context, payload events.ChatMessagePayload) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	channel := events.ConversationChannel(payload.ConversationID)
	record(p.publish(ctx, channel, events.EventChatMessageNew, payload))

	for _, recipientID := range payload.Recipients {
		record(p.publish(ctx, channel, events.EventChatDeliveryState, events.DeliveryStatusPayload{
			MessageID:      payload.MessageID,
			ConversationID: payload.ConversationID,
			RecipientID:    recipientID,
			Status:         "dispatched",
			At:             p.clock().UTC(),
		}))

		record(p.push.SendPush(ctx, recipientID, "New message", preview(payload.Body)))

		record(p.notifications.Create(ctx, &domain.Notification{
			ID:             uuid.New(),
			UserID:         recipientID,
			Kind:           domain.NotificationChat,
			Title:          "New message",
			Body:           preview(payload.Body),
			ConversationID: uuid.NullUUID{UUID: payload.ConversationID, Valid: true},
			CreatedAt:      p.clock(),
		}))

		record(p.publish(ctx, events.BellChannel(recipientID), events.EventBellNotification, events.BellPayload{
			UserID:         recipientID,
			Kind:           domain.NotificationChat,
			Title:          "New message",
			Body:           preview(payload.Body),
			ConversationID: payload.ConversationID,
			At:             p.clock().UTC(),
		}))
	}

	return firstErr
}

func (p *Processor) publish(ctx context.Context, channel, eventType string, payload interface{}) error {
	env, err := events.NewEnvelope(eventType, payload)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, channel, raw)
}

const previewLimit = 120

func preview(body string) string {
	if len(body) <= previewLimit {
		return body
	}
	return body[:previewLimit]
}
