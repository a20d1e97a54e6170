package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/menuqrs/menuqr/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	viewsQueue       = "menu_views_queue"
	viewsDLQExchange = "menu_views_dlq"
	viewsDLQQueue    = "menu_views_queue_dlq"
)

type consumer struct {
	conn     Connection
	prefetch int
}

func NewConsumer(conn Connection, prefetch int) interfaces.MessageConsumer {
	return &consumer{conn: conn, prefetch: prefetch}
}

func (c *consumer) ConsumeViewEvents(ctx context.Context, handler interfaces.ViewEventHandler) error {
	for {
		err := c.consumeWithReconnect(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err == nil {
			return nil
		}

		log.Printf("View events consumer disconnected: %v. Reconnecting in 5 seconds...", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (c *consumer) consumeWithReconnect(ctx context.Context, handler interfaces.ViewEventHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := c.setupViewsInfrastructure(ch); err != nil {
		return err
	}

	msgs, err := ch.Consume(viewsQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			if err := handler(ctx, msg.Body); err != nil {
				// Malformed events go to the DLQ; transient store
				// failures are requeued for another attempt.
				if strings.Contains(err.Error(), "invalid view event") {
					msg.Nack(false, false)
				} else {
					msg.Nack(false, true)
				}
			} else {
				msg.Ack(false)
			}
		}
	}
}

func (c *consumer) setupViewsInfrastructure(ch Channel) error {
	if err := ch.ExchangeDeclare(viewsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare views exchange: %w", err)
	}

	if err := ch.ExchangeDeclare(viewsDLQExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(viewsDLQQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ: %w", err)
	}

	if err := ch.QueueBind(viewsDLQQueue, "#", viewsDLQExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange": viewsDLQExchange,
	}

	q, err := ch.QueueDeclare(viewsQueue, true, false, false, false, args)
	if err != nil {
		return fmt.Errorf("failed to declare views queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "views.#", viewsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind views queue: %w", err)
	}

	return nil
}
