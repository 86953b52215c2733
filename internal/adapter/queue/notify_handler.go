package queue

import (
	"context"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// Mailer is the external notification collaborator (transactional email
// service). Delivery is at-most-best-effort.
type Mailer interface {
	Send(ctx context.Context, ev usecase.NotificationEvent) error
}

// NotificationHandler consumes workflow events from the notification queue
// and forwards them to the mailer. Intended for queue.JSONHandler.
type NotificationHandler struct {
	mailer Mailer
}

func NewNotificationHandler(m Mailer) *NotificationHandler {
	return &NotificationHandler{mailer: m}
}

func (h *NotificationHandler) Handle(ctx context.Context, ev usecase.NotificationEvent) error {
	l := logging.FromCtx(ctx).With("event", ev.Event, "order_number", ev.OrderNumber)
	if h.mailer == nil {
		l.Info("notification received (no mailer configured)")
		return nil
	}
	if err := h.mailer.Send(ctx, ev); err != nil {
		l.Error("mailer send failed", "err", err)
		return err
	}
	l.Info("notification delivered")
	return nil
}
