package interfaces

import (
	"context"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
)

// RabbitMQ messages

// ViewEventMessage is the wire form of a menu view. The public server
// publishes it; the ingest worker appends it to Postgres.
type ViewEventMessage struct {
	Subdomain  string             `json:"subdomain"`
	MenuID     string             `json:"menu_id"`
	ItemName   string             `json:"item_name,omitempty"`
	Device     domain.DeviceClass `json:"device"`
	DurationMs int64              `json:"duration_ms"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Messaging interfaces (Adapter/RabbitMQ)

type MessagePublisher interface {
	PublishViewEvent(ctx context.Context, msg ViewEventMessage) error
}

type MessageConsumer interface {
	ConsumeViewEvents(ctx context.Context, handler ViewEventHandler) error
}

type ViewEventHandler func(ctx context.Context, body []byte) error
