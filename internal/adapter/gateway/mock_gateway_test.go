package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

func TestMockGatewayFlow(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway("INR")

	o, err := g.CreateOrder(ctx, 295000, "ORD-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.AmountPaise != 295000 || o.Currency != "INR" || o.Status != "created" {
		t.Fatalf("order = %+v", o)
	}

	// unsettled order: nothing to verify yet
	if g.VerifySignature(o.ID, "pay_unknown", "") {
		t.Error("verification passed with no payment")
	}

	payID, err := g.Settle(o.ID, 295000)
	if err != nil {
		t.Fatal(err)
	}

	if !g.VerifySignature(o.ID, payID, "anything") {
		t.Error("settled payment failed verification")
	}
	if g.VerifySignature("order_other", payID, "") {
		t.Error("payment verified against the wrong order")
	}

	p, err := g.FetchPayment(ctx, payID)
	if err != nil {
		t.Fatal(err)
	}
	if p.GatewayOrderID != o.ID || p.Status != "paid" {
		t.Errorf("payment = %+v", p)
	}
}

func TestMockGatewaySettleUnknownOrder(t *testing.T) {
	g := NewMockGateway("INR")
	if _, err := g.Settle("order_missing", 100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestMockGatewayConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway("INR")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := g.CreateOrder(ctx, 1000, "ORD-X", nil)
			if err != nil {
				t.Error(err)
				return
			}
			payID, err := g.Settle(o.ID, 1000)
			if err != nil {
				t.Error(err)
				return
			}
			if !g.VerifySignature(o.ID, payID, "") {
				t.Error("verification failed")
			}
		}()
	}
	wg.Wait()
}
