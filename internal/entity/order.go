package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusPaymentReceived Status = "payment_received"
	StatusAccepted        Status = "accepted"
	StatusRejected        Status = "rejected"
	StatusShipped         Status = "shipped"
	StatusDelivered       Status = "delivered"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// ShippingSnapshot is copied from the user's profile at order time and is
// never re-read from it. Later profile edits must not change where an
// in-flight order ships.
type ShippingSnapshot struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// OrderItem is owned exclusively by one Order. Name and unit price are
// denormalized from the catalog at order time and immutable afterward.
type OrderItem struct {
	ProductID   string
	ProductName string
	PricePaise  int64
	Quantity    int
}

type Order struct {
	ID          string
	OrderNumber string
	UserID      string

	Items []OrderItem

	SubtotalPaise int64
	TaxPaise      int64
	TotalPaise    int64
	PaidPaise     int64

	Status        Status
	PaymentStatus PaymentStatus

	Shipping ShippingSnapshot

	TrackingNumber  string
	ShippingCarrier string
	TrackingURL     string
	RejectionReason string
	AdminNotes      string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

// Validate checks the creation-time invariants: non-empty items, complete
// shipping snapshot, sane item quantities/prices, and total arithmetic.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return NewValidationError("items", "must not be empty")
	}
	for i, it := range o.Items {
		if it.Quantity < 1 {
			return NewValidationError("items", fmt.Sprintf("quantity must be >= 1 at index %d", i))
		}
		if it.PricePaise < 0 {
			return NewValidationError("items", fmt.Sprintf("price must be >= 0 at index %d", i))
		}
	}
	if err := o.Shipping.validate(); err != nil {
		return err
	}
	if o.SubtotalPaise != o.ItemSubtotal() {
		return NewValidationError("subtotal", "does not match sum of item price*quantity")
	}
	if o.TotalPaise != o.SubtotalPaise+o.TaxPaise {
		return NewValidationError("total", "must equal subtotal + tax")
	}
	if o.PaidPaise < 0 || o.PaidPaise > o.TotalPaise {
		return NewValidationError("paidAmount", "must be between 0 and total")
	}
	return nil
}

// ItemSubtotal sums price*quantity across items. The client-supplied
// subtotal must match it exactly; anything else is a forged total.
func (o *Order) ItemSubtotal() int64 {
	var sum int64
	for _, it := range o.Items {
		sum += it.PricePaise * int64(it.Quantity)
	}
	return sum
}

func (s ShippingSnapshot) validate() error {
	fields := []struct{ name, val string }{
		{"shipping.name", s.Name},
		{"shipping.email", s.Email},
		{"shipping.phone", s.Phone},
		{"shipping.address", s.Address},
		{"shipping.city", s.City},
		{"shipping.state", s.State},
		{"shipping.pincode", s.Pincode},
	}
	for _, f := range fields {
		if f.val == "" {
			return NewValidationError(f.name, "required")
		}
	}
	return nil
}

// CreditPayment applies a verified payment amount. The caller (repository)
// is responsible for deduplicating on the gateway payment id; this method
// only enforces the money invariant and the pending -> payment_received
// status rule. Re-crediting an already-paid order is a status no-op.
func (o Order) CreditPayment(amountPaise int64, now time.Time) (Order, error) {
	if amountPaise <= 0 {
		return o, NewValidationError("amount", "must be positive")
	}
	if o.PaidPaise+amountPaise > o.TotalPaise {
		return o, NewValidationError("amount", "would exceed order total")
	}
	o.PaidPaise += amountPaise
	o.PaymentStatus = PaymentCompleted
	if o.Status == StatusPending {
		o.Status = StatusPaymentReceived
	}
	o.UpdatedAt = now
	return o, nil
}
