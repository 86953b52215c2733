package domain

import (
	"errors"
	"testing"
	"time"
)

func validRegistration() Registration {
	return Registration{
		ID:                 "r1",
		RegistrationNumber: "REG-260829100000-abc123",
		UserID:             "u1",
		DeviceModel:        "AquaPure X2",
		SerialNumber:       "SN-0042",
		TermYears:          2,
		DeviceFeePaise:     1500000,
		SupportFeePaise:    300000,
		DeliveryFeePaise:   50000,
		SubtotalPaise:      1850000,
		GSTPaise:           333000,
		TotalPaise:         2183000,
		Status:             StatusPending,
		PaymentStatus:      PaymentPending,
		PaymentMethod:      "online",
		Contact:            validShipping(),
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Registration)
		wantField string
	}{
		{"valid", func(r *Registration) {}, ""},
		{"missing device model", func(r *Registration) { r.DeviceModel = "" }, "deviceModel"},
		{"zero term", func(r *Registration) { r.TermYears = 0 }, "termYears"},
		{"negative fee", func(r *Registration) { r.SupportFeePaise = -1 }, "fees"},
		{"fee sum mismatch", func(r *Registration) { r.SubtotalPaise = 1800000 }, "subtotal"},
		{"total mismatch", func(r *Registration) { r.TotalPaise = 2000000 }, "total"},
		{"missing contact phone", func(r *Registration) { r.Contact.Phone = "" }, "shipping.phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			err := r.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestRegistrationCreditPayment(t *testing.T) {
	now := time.Now().UTC()

	r := validRegistration()
	paid, err := r.CreditPayment(r.TotalPaise, now)
	if err != nil {
		t.Fatal(err)
	}
	if paid.Status != StatusPaymentReceived {
		t.Errorf("Status = %q", paid.Status)
	}
	if paid.PaymentStatus != PaymentCompleted {
		t.Errorf("PaymentStatus = %q", paid.PaymentStatus)
	}

	if _, err := paid.CreditPayment(1, now); err == nil {
		t.Error("want overpayment error on a fully paid registration")
	}
}
