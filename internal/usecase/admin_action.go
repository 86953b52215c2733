package usecase

import (
	"context"
	"errors"
	"time"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
)

const RoleAdmin = "admin"

type AdminActionInput struct {
	OrderID   string
	Action    domain.Action
	Payload   domain.TransitionPayload
	ActorRole string
}

type AdminAction struct {
	orders   OrderRepo
	notifier Notifier
	cache    OrderCache // optional
	now      func() time.Time
}

func NewAdminAction(orders OrderRepo, notifier Notifier, cache OrderCache) *AdminAction {
	return &AdminAction{orders: orders, notifier: notifier, cache: cache, now: time.Now}
}

// Execute authorizes, evaluates the transition, persists it behind a
// status-guarded update, and only then dispatches the notification. The
// transition is the authoritative outcome: a notification failure is
// logged and swallowed, never reported to the caller.
func (uc *AdminAction) Execute(ctx context.Context, in AdminActionInput) (*domain.Order, error) {
	if in.ActorRole != RoleAdmin {
		return nil, domain.ErrForbidden
	}

	o, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	updated, err := domain.ApplyTransition(*o, in.Action, in.Payload, uc.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.orders.ApplyTransition(ctx, &updated, o.Status); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent action moved the order first. Report the status
			// it actually has now.
			cur, gerr := uc.orders.GetByID(ctx, in.OrderID)
			if gerr != nil {
				return nil, gerr
			}
			return nil, &domain.InvalidTransitionError{Current: cur.Status, Action: in.Action}
		}
		return nil, err
	}

	if uc.cache != nil {
		if cerr := uc.cache.SetStatus(ctx, updated.ID, string(updated.Status)); cerr != nil {
			logging.FromCtx(ctx).Warn("status cache update failed", "order_id", updated.ID, "err", cerr)
		}
	}

	uc.notify(ctx, &updated, in.Action)
	return &updated, nil
}

func (uc *AdminAction) notify(ctx context.Context, o *domain.Order, action domain.Action) {
	ev := NotificationEvent{
		OrderNumber: o.OrderNumber,
		Name:        o.Shipping.Name,
		Email:       o.Shipping.Email,
		Phone:       o.Shipping.Phone,
	}
	switch action {
	case domain.ActionApprove:
		ev.Event = EventOrderApproved
	case domain.ActionReject:
		ev.Event = EventOrderRejected
		ev.RejectionReason = o.RejectionReason
	case domain.ActionShip:
		ev.Event = EventOrderShipped
		ev.TrackingNumber = o.TrackingNumber
		ev.ShippingCarrier = o.ShippingCarrier
		ev.TrackingURL = o.TrackingURL
	case domain.ActionDeliver:
		ev.Event = EventOrderDelivered
	default:
		return
	}
	if err := uc.notifier.Notify(ctx, ev); err != nil {
		logging.FromCtx(ctx).Error("notification dispatch failed",
			"event", ev.Event, "order_number", o.OrderNumber, "err", err)
	}
}
