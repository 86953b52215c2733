package kafka

import (
	"context"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// SettlementHandler applies gateway settlement webhooks to the payment
// recording path. The use case verifies the signature and dedupes on the
// gateway payment id, so replayed events are harmless.
type SettlementHandler struct {
	orders        *usecase.RecordPayment
	registrations *usecase.Registrations
}

func NewSettlementHandler(orders *usecase.RecordPayment, registrations *usecase.Registrations) *SettlementHandler {
	return &SettlementHandler{orders: orders, registrations: registrations}
}

func (h *SettlementHandler) Handle(ctx context.Context, ev usecase.PaymentSettledMsg) error {
	in := usecase.RecordPaymentInput{
		OrderID:          ev.OrderID,
		GatewayOrderID:   ev.GatewayOrderID,
		GatewayPaymentID: ev.GatewayPaymentID,
		Signature:        ev.Signature,
		AmountPaise:      ev.AmountPaise,
	}
	if ev.RegistrationID != "" {
		_, err := h.registrations.RecordPayment(ctx, ev.RegistrationID, in)
		return err
	}
	_, err := h.orders.Execute(ctx, in)
	return err
}
