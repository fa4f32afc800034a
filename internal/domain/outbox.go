package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outbox event status
const (
	OutboxPending    = "pending"
	OutboxProcessing = "processing"
	OutboxCompleted  = "completed"
	OutboxFailed     = "failed"
)

// OutboxEvent represents the outbox_events table. Fan-out work is written
// here in the same request that persists a message, then drained by the
// outbox processor.
type OutboxEvent struct {
	ID            uuid.UUID
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       []byte `gorm:"type:jsonb"`
	Status        string
	RetryCount    int
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ProcessedAt   *time.Time
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}
