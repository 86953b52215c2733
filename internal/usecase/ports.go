package usecase

import (
	"context"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

// GatewayOrder is the payment processor's record of a checkout attempt,
// distinct from the domain order.
type GatewayOrder struct {
	ID          string
	AmountPaise int64
	Currency    string
	Status      string
}

type GatewayPayment struct {
	ID             string
	GatewayOrderID string
	AmountPaise    int64
	Currency       string
	Status         string // created | paid | failed | refunded
}

// PaymentGateway abstracts the payment processor. Creating a gateway order
// never mutates domain state; only a verified payment confirmation does.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	FetchPayment(ctx context.Context, gatewayPaymentID string) (*GatewayPayment, error)
}

type OrderRepo interface {
	// Create persists the order, its items, and clears the user's cart in
	// one transaction. A duplicate order number surfaces as domain.ErrConflict.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ApplyTransition commits the updated order guarded by `WHERE status = from`.
	// A compare miss (a concurrent transition won) returns domain.ErrConflict;
	// an unknown id returns domain.ErrNotFound.
	ApplyTransition(ctx context.Context, updated *domain.Order, from domain.Status) error
	// RecordPayment atomically dedupes on gatewayPaymentID and credits the
	// order. applied=false means this payment id was seen before and
	// nothing changed.
	RecordPayment(ctx context.Context, orderID, gatewayOrderID, gatewayPaymentID string, amountPaise int64) (o *domain.Order, applied bool, err error)
}

type RegistrationRepo interface {
	Create(ctx context.Context, r *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	GetByNumberAndEmail(ctx context.Context, number, email string) (*domain.Registration, error)
	RecordPayment(ctx context.Context, registrationID, gatewayOrderID, gatewayPaymentID string, amountPaise int64) (r *domain.Registration, applied bool, err error)
}

// Notifier hands workflow events to the notification pipeline. Delivery is
// best-effort; callers log and swallow failures.
type Notifier interface {
	Notify(ctx context.Context, ev NotificationEvent) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}
