package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// MockGateway emulates the payment processor for test and dev
// environments. It keeps orders and payments in two mutex-guarded maps and
// nothing else: no persistence, no real settlement. Wire it only from a
// non-production composition root.
type MockGateway struct {
	mu       sync.Mutex
	currency string
	orders   map[string]*usecase.GatewayOrder
	payments map[string]*usecase.GatewayPayment
}

func NewMockGateway(currency string) *MockGateway {
	return &MockGateway{
		currency: currency,
		orders:   make(map[string]*usecase.GatewayOrder),
		payments: make(map[string]*usecase.GatewayPayment),
	}
}

func (g *MockGateway) CreateOrder(_ context.Context, amountPaise int64, _ string, _ map[string]string) (*usecase.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	o := &usecase.GatewayOrder{
		ID:          "order_" + uuid.NewString(),
		AmountPaise: amountPaise,
		Currency:    g.currency,
		Status:      "created",
	}
	g.orders[o.ID] = o
	return o, nil
}

// Settle simulates the processor completing a checkout asynchronously: it
// creates a paid payment against an existing gateway order and returns its
// id, which a test or dev client then reports back for confirmation.
func (g *MockGateway) Settle(gatewayOrderID string, amountPaise int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.orders[gatewayOrderID]; !ok {
		return "", domain.ErrNotFound
	}
	p := &usecase.GatewayPayment{
		ID:             "pay_" + uuid.NewString(),
		GatewayOrderID: gatewayOrderID,
		AmountPaise:    amountPaise,
		Currency:       g.currency,
		Status:         "paid",
	}
	g.payments[p.ID] = p
	return p.ID, nil
}

// VerifySignature ignores the signature string: the mock accepts a
// confirmation only if the payment exists and references the given order.
func (g *MockGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, _ string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[gatewayPaymentID]
	return ok && p.GatewayOrderID == gatewayOrderID && p.Status == "paid"
}

func (g *MockGateway) FetchPayment(_ context.Context, gatewayPaymentID string) (*usecase.GatewayPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[gatewayPaymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

var _ usecase.PaymentGateway = (*MockGateway)(nil)
