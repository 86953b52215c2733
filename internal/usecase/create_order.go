package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

type ItemInput struct {
	ProductID   string
	ProductName string
	PricePaise  int64
	Quantity    int
}

type CreateOrderInput struct {
	UserID         string
	IdempotencyKey string
	Shipping       domain.ShippingSnapshot
	Items          []ItemInput
	SubtotalPaise  int64
}

type CreateOrder struct {
	repo       OrderRepo
	idem       IdempotencyStore
	taxRateBps int64
	now        func() time.Time
}

func NewCreateOrder(repo OrderRepo, idem IdempotencyStore, taxRateBps int64) *CreateOrder {
	return &CreateOrder{repo: repo, idem: idem, taxRateBps: taxRateBps, now: time.Now}
}

// Execute validates the cart snapshot, prices the order server-side, and
// persists order + items + cart clear in one transaction.
//
// Duplicate submissions are only deduplicated when the caller supplies an
// idempotency key; without one, resubmitting creates a second order. That
// is a documented limitation, not something this layer papers over.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.UserID == "" {
		return nil, domain.NewValidationError("userId", "required")
	}

	// Fast path: same caller, same key, already created.
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			return uc.repo.GetByID(ctx, id)
		}
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrConflict
		}
	}

	now := uc.now().UTC()
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			PricePaise:  it.PricePaise,
			Quantity:    it.Quantity,
		})
	}

	tax := domain.ComputeTax(in.SubtotalPaise, uc.taxRateBps)
	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Items:         items,
		SubtotalPaise: in.SubtotalPaise,
		TaxPaise:      tax,
		TotalPaise:    in.SubtotalPaise + tax,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		Shipping:      in.Shipping,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	// Order numbers carry a timestamp plus a random suffix. Collisions are
	// unlikely but possible, so the unique index is authoritative and a
	// conflict just means "generate again".
	const maxAttempts = 3
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		order.OrderNumber = newOrderNumber("ORD", now)
		err = uc.repo.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, order.ID)
	}
	return order, nil
}

func newOrderNumber(prefix string, now time.Time) string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102150405"), strings.ToUpper(hex.EncodeToString(b[:])))
}
