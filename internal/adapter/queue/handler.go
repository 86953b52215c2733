package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes a single delivery. Implementations must be idempotent:
// the broker may redeliver. Return nil => ACK; return error => NACK
// (requeue behavior is controlled by the Router).
type Handler interface {
	Handle(ctx context.Context, d amqp.Delivery) error
}
