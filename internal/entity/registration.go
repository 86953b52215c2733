package domain

import "time"

// Registration is a fixed-term service registration (device plus AMC
// support for a number of years). It follows the order payment funnel but
// terminates at payment_received: expiry is a derived read-time
// computation, never a stored transition.
type Registration struct {
	ID                 string
	RegistrationNumber string
	UserID             string

	DeviceModel  string
	SerialNumber string
	TermYears    int

	DeviceFeePaise   int64
	SupportFeePaise  int64
	DeliveryFeePaise int64
	SubtotalPaise    int64
	GSTPaise         int64
	TotalPaise       int64
	PaidPaise        int64

	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod string
	PaymentID     string

	Contact ShippingSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Registration) Validate() error {
	if r.DeviceModel == "" {
		return NewValidationError("deviceModel", "required")
	}
	if r.TermYears < 1 {
		return NewValidationError("termYears", "must be >= 1")
	}
	if r.DeviceFeePaise < 0 || r.SupportFeePaise < 0 || r.DeliveryFeePaise < 0 {
		return NewValidationError("fees", "must be >= 0")
	}
	if r.SubtotalPaise != r.DeviceFeePaise+r.SupportFeePaise+r.DeliveryFeePaise {
		return NewValidationError("subtotal", "must equal deviceFee + supportFee + deliveryFee")
	}
	if r.TotalPaise != r.SubtotalPaise+r.GSTPaise {
		return NewValidationError("total", "must equal subtotal + gst")
	}
	if err := r.Contact.validate(); err != nil {
		return err
	}
	return nil
}

// CreditPayment mirrors Order.CreditPayment; payment_received is terminal
// for registrations.
func (r Registration) CreditPayment(amountPaise int64, now time.Time) (Registration, error) {
	if amountPaise <= 0 {
		return r, NewValidationError("amount", "must be positive")
	}
	if r.PaidPaise+amountPaise > r.TotalPaise {
		return r, NewValidationError("amount", "would exceed registration total")
	}
	r.PaidPaise += amountPaise
	r.PaymentStatus = PaymentCompleted
	if r.Status == StatusPending {
		r.Status = StatusPaymentReceived
	}
	r.UpdatedAt = now
	return r, nil
}
