package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

func testRegistrationInput() CreateRegistrationInput {
	return CreateRegistrationInput{
		UserID:           "u1",
		DeviceModel:      "AquaPure X2",
		SerialNumber:     "SN-0042",
		TermYears:        2,
		DeviceFeePaise:   1500000,
		SupportFeePaise:  300000,
		DeliveryFeePaise: 50000,
		PaymentMethod:    "online",
		Contact:          testShipping(),
	}
}

func TestRegistrationsCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("computes gst and totals", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		uc := NewRegistrations(repo, &fakeGateway{}, &fakeNotifier{}, 1800, 30)

		reg, err := uc.Create(ctx, testRegistrationInput())
		if err != nil {
			t.Fatal(err)
		}
		if reg.SubtotalPaise != 1850000 {
			t.Errorf("SubtotalPaise = %d", reg.SubtotalPaise)
		}
		if reg.GSTPaise != 333000 { // 18% of 18500.00
			t.Errorf("GSTPaise = %d", reg.GSTPaise)
		}
		if reg.TotalPaise != 2183000 {
			t.Errorf("TotalPaise = %d", reg.TotalPaise)
		}
		if !strings.HasPrefix(reg.RegistrationNumber, "REG-") {
			t.Errorf("RegistrationNumber = %q", reg.RegistrationNumber)
		}
		if reg.Status != domain.StatusPending {
			t.Errorf("Status = %q", reg.Status)
		}
	})

	t.Run("incomplete contact rejected", func(t *testing.T) {
		uc := NewRegistrations(newFakeRegistrationRepo(), &fakeGateway{}, &fakeNotifier{}, 1800, 30)
		in := testRegistrationInput()
		in.Contact.Email = ""
		var ve *domain.ValidationError
		if _, err := uc.Create(ctx, in); !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})
}

func TestRegistrationsPayment(t *testing.T) {
	ctx := context.Background()

	setup := func(validSig bool) (*Registrations, *fakeRegistrationRepo, *fakeNotifier, *domain.Registration) {
		repo := newFakeRegistrationRepo()
		n := &fakeNotifier{}
		uc := NewRegistrations(repo, &fakeGateway{validSig: validSig}, n, 1800, 30)
		reg, err := uc.Create(ctx, testRegistrationInput())
		if err != nil {
			t.Fatal(err)
		}
		return uc, repo, n, reg
	}

	t.Run("initiate charges the outstanding amount", func(t *testing.T) {
		uc, _, _, reg := setup(true)
		d, err := uc.InitiatePayment(ctx, reg.ID)
		if err != nil {
			t.Fatal(err)
		}
		if d.AmountPaise != reg.TotalPaise {
			t.Errorf("AmountPaise = %d, want %d", d.AmountPaise, reg.TotalPaise)
		}
		if d.OrderNumber != reg.RegistrationNumber {
			t.Errorf("OrderNumber = %q", d.OrderNumber)
		}
	})

	t.Run("record verified payment notifies once", func(t *testing.T) {
		uc, _, n, reg := setup(true)
		in := RecordPaymentInput{
			GatewayOrderID:   "gw_1",
			GatewayPaymentID: "pay_1",
			Signature:        "sig",
			AmountPaise:      reg.TotalPaise,
		}

		got, err := uc.RecordPayment(ctx, reg.ID, in)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != domain.StatusPaymentReceived {
			t.Errorf("Status = %q", got.Status)
		}
		if got.PaymentID != "pay_1" {
			t.Errorf("PaymentID = %q", got.PaymentID)
		}
		if len(n.events) != 1 || n.events[0].Event != EventRegistrationPaymentReceived {
			t.Fatalf("events = %+v", n.events)
		}

		// replaying the same gateway payment id must not notify again
		if _, err := uc.RecordPayment(ctx, reg.ID, in); err != nil {
			t.Fatal(err)
		}
		if len(n.events) != 1 {
			t.Errorf("events after replay = %d, want 1", len(n.events))
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		uc, repo, _, reg := setup(false)
		in := RecordPaymentInput{
			GatewayOrderID:   "gw_1",
			GatewayPaymentID: "pay_1",
			Signature:        "forged",
			AmountPaise:      reg.TotalPaise,
		}
		if _, err := uc.RecordPayment(ctx, reg.ID, in); !errors.Is(err, domain.ErrPaymentVerificationFailed) {
			t.Fatalf("error = %v, want ErrPaymentVerificationFailed", err)
		}
		if repo.regs[reg.ID].PaidPaise != 0 {
			t.Error("registration credited despite failed verification")
		}
	})
}

func TestRegistrationsStatus(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRegistrationRepo()
	uc := NewRegistrations(repo, &fakeGateway{}, &fakeNotifier{}, 1800, 30)
	reg, err := uc.Create(ctx, testRegistrationInput())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("derives validity at read time", func(t *testing.T) {
		uc.now = func() time.Time {
			return reg.CreatedAt.AddDate(0, 0, 10)
		}
		res, err := uc.Status(ctx, reg.RegistrationNumber, reg.Contact.Email)
		if err != nil {
			t.Fatal(err)
		}
		want := reg.CreatedAt.AddDate(reg.TermYears, 0, 0)
		if !res.Validity.ExpiryDate.Equal(want) {
			t.Errorf("ExpiryDate = %v, want %v", res.Validity.ExpiryDate, want)
		}
		if res.Validity.IsExpired || res.Validity.IsExpiringSoon {
			t.Errorf("validity flags = %+v", res.Validity)
		}
	})

	t.Run("number and email must both match", func(t *testing.T) {
		if _, err := uc.Status(ctx, reg.RegistrationNumber, "someone-else@example.com"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing params", func(t *testing.T) {
		var ve *domain.ValidationError
		if _, err := uc.Status(ctx, "", ""); !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})
}
