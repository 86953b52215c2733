package usecase

import (
	"context"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

const (
	PaymentTypeFull    = "full"
	PaymentTypeAdvance = "advance"
)

// CheckoutDescriptor is what the client needs to open the processor's
// checkout for the amount still owed.
type CheckoutDescriptor struct {
	GatewayOrderID string
	AmountPaise    int64
	Currency       string
	OrderNumber    string
}

type InitiatePayment struct {
	orders     OrderRepo
	gateway    PaymentGateway
	advanceBps int64 // portion of the total charged for an advance payment
}

func NewInitiatePayment(orders OrderRepo, gateway PaymentGateway, advanceBps int64) *InitiatePayment {
	return &InitiatePayment{orders: orders, gateway: gateway, advanceBps: advanceBps}
}

// Execute creates a gateway order for the outstanding amount. It never
// touches the domain order: status only moves on a verified confirmation.
func (uc *InitiatePayment) Execute(ctx context.Context, orderID, paymentType string) (*CheckoutDescriptor, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	outstanding := o.TotalPaise - o.PaidPaise
	if outstanding <= 0 {
		return nil, domain.NewValidationError("orderId", "order is already fully paid")
	}

	amount := outstanding
	if paymentType == PaymentTypeAdvance {
		if adv := o.TotalPaise * uc.advanceBps / 10000; adv < amount {
			amount = adv
		}
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("paymentType", "resolves to a zero amount")
	}

	gw, err := uc.gateway.CreateOrder(ctx, amount, o.OrderNumber, map[string]string{
		"order_id": o.ID,
		"type":     paymentType,
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutDescriptor{
		GatewayOrderID: gw.ID,
		AmountPaise:    gw.AmountPaise,
		Currency:       gw.Currency,
		OrderNumber:    o.OrderNumber,
	}, nil
}
