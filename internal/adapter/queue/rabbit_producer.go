package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

const (
	exchangeName = "commerce.events"
	// one queue carries every notification event; routing keys are the
	// event names (order.approved, order.shipped, ...)
	NotificationQueue = "notifications.q"
)

// NotificationProducer implements usecase.Notifier on a RabbitMQ topic
// exchange. Events are published persistent; delivery past the broker is
// the notification worker's problem.
type NotificationProducer struct {
	ch *amqp.Channel
}

// NewNotificationProducer declares the exchange, the notification queue,
// and its bindings once at startup.
func NewNotificationProducer(ch *amqp.Channel) (*NotificationProducer, error) {
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		NotificationQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, pattern := range []string{"order.*", "registration.*"} {
		if err := ch.QueueBind(q.Name, pattern, exchangeName, false, nil); err != nil {
			return nil, fmt.Errorf("queue bind %s: %w", pattern, err)
		}
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &NotificationProducer{ch: ch}, nil
}

func (p *NotificationProducer) Notify(ctx context.Context, ev usecase.NotificationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, exchangeName, ev.Event, false, false, pub); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Event, err)
	}
	return nil
}

var _ usecase.Notifier = (*NotificationProducer)(nil)
