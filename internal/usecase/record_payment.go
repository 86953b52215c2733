package usecase

import (
	"context"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
)

type RecordPaymentInput struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	AmountPaise      int64
}

type RecordPayment struct {
	orders  OrderRepo
	gateway PaymentGateway
	cache   OrderCache // optional
}

func NewRecordPayment(orders OrderRepo, gateway PaymentGateway, cache OrderCache) *RecordPayment {
	return &RecordPayment{orders: orders, gateway: gateway, cache: cache}
}

// Execute applies a payment confirmation to an order. The signature is
// verified before anything is written; recording the same gateway payment
// id twice credits the order exactly once.
func (uc *RecordPayment) Execute(ctx context.Context, in RecordPaymentInput) (*domain.Order, error) {
	if in.GatewayOrderID == "" || in.GatewayPaymentID == "" {
		return nil, domain.NewValidationError("payment", "gateway order id and payment id required")
	}

	if !uc.gateway.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, domain.ErrPaymentVerificationFailed
	}

	o, applied, err := uc.orders.RecordPayment(ctx, in.OrderID, in.GatewayOrderID, in.GatewayPaymentID, in.AmountPaise)
	if err != nil {
		return nil, err
	}
	if !applied {
		logging.FromCtx(ctx).Info("payment already recorded, no-op",
			"order_id", in.OrderID, "gateway_payment_id", in.GatewayPaymentID)
	}

	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, o.ID, string(o.Status)); err != nil {
			logging.FromCtx(ctx).Warn("status cache update failed", "order_id", o.ID, "err", err)
		}
	}
	return o, nil
}
