package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

func testShipping() domain.ShippingSnapshot {
	return domain.ShippingSnapshot{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "+919800000000",
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "KA",
		Pincode: "560001",
	}
}

func testCreateInput() CreateOrderInput {
	return CreateOrderInput{
		UserID:   "u1",
		Shipping: testShipping(),
		Items: []ItemInput{
			{ProductID: "p1", ProductName: "Widget", PricePaise: 100000, Quantity: 2},
			{ProductID: "p2", ProductName: "Gadget", PricePaise: 50000, Quantity: 1},
		},
		SubtotalPaise: 250000,
	}
}

func TestCreateOrderExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("prices the order server-side", func(t *testing.T) {
		repo := newFakeOrderRepo()
		uc := NewCreateOrder(repo, newFakeIdemStore(), 1800)

		o, err := uc.Execute(ctx, testCreateInput())
		if err != nil {
			t.Fatal(err)
		}
		if o.TaxPaise != 45000 {
			t.Errorf("TaxPaise = %d, want 45000", o.TaxPaise)
		}
		if o.TotalPaise != 295000 {
			t.Errorf("TotalPaise = %d, want 295000", o.TotalPaise)
		}
		if o.Status != domain.StatusPending || o.PaymentStatus != domain.PaymentPending {
			t.Errorf("status = %q/%q, want pending/pending", o.Status, o.PaymentStatus)
		}
		if !strings.HasPrefix(o.OrderNumber, "ORD-") {
			t.Errorf("OrderNumber = %q", o.OrderNumber)
		}
		if _, ok := repo.orders[o.ID]; !ok {
			t.Error("order not persisted")
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		uc := NewCreateOrder(newFakeOrderRepo(), newFakeIdemStore(), 1800)
		in := testCreateInput()
		in.UserID = ""
		var ve *domain.ValidationError
		if _, err := uc.Execute(ctx, in); !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		uc := NewCreateOrder(newFakeOrderRepo(), newFakeIdemStore(), 1800)
		in := testCreateInput()
		in.Items = nil
		in.SubtotalPaise = 0
		var ve *domain.ValidationError
		if _, err := uc.Execute(ctx, in); !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("forged subtotal rejected", func(t *testing.T) {
		uc := NewCreateOrder(newFakeOrderRepo(), newFakeIdemStore(), 1800)
		in := testCreateInput()
		in.SubtotalPaise = 1
		var ve *domain.ValidationError
		if _, err := uc.Execute(ctx, in); !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("idempotency key replays the first order", func(t *testing.T) {
		repo := newFakeOrderRepo()
		uc := NewCreateOrder(repo, newFakeIdemStore(), 1800)

		in := testCreateInput()
		in.IdempotencyKey = "k1"
		first, err := uc.Execute(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		second, err := uc.Execute(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		if second.ID != first.ID {
			t.Errorf("second.ID = %q, want %q", second.ID, first.ID)
		}
		if repo.createCalls != 1 {
			t.Errorf("createCalls = %d, want 1", repo.createCalls)
		}
	})

	t.Run("concurrent duplicate with same key conflicts", func(t *testing.T) {
		repo := newFakeOrderRepo()
		idem := newFakeIdemStore()
		uc := NewCreateOrder(repo, idem, 1800)

		in := testCreateInput()
		in.IdempotencyKey = "k2"
		// first caller holds the lock but has not committed yet
		if ok, _ := idem.TryLock(ctx, "u1", "k2"); !ok {
			t.Fatal("setup lock failed")
		}
		if _, err := uc.Execute(ctx, in); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("error = %v, want ErrConflict", err)
		}
	})

	t.Run("order number collision retries", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.createErr = domain.ErrConflict
		repo.createErrOnce = true
		uc := NewCreateOrder(repo, newFakeIdemStore(), 1800)

		if _, err := uc.Execute(ctx, testCreateInput()); err != nil {
			t.Fatal(err)
		}
		if repo.createCalls != 2 {
			t.Errorf("createCalls = %d, want 2", repo.createCalls)
		}
	})
}
