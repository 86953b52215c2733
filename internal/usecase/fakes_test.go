package usecase

import (
	"context"
	"time"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

// In-memory fakes for the ports. Not safe for concurrent use; tests are
// single-goroutine.

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	// gateway payment ids already recorded, keyed to the credited amount
	payments map[string]int64

	createErr     error
	createErrOnce bool // return createErr only on the first Create call
	transitionErr error

	createCalls     int
	transitionCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[string]*domain.Order{},
		payments: map[string]int64{},
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	f.createCalls++
	if f.createErr != nil {
		err := f.createErr
		if f.createErrOnce {
			f.createErr = nil
		}
		return err
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ApplyTransition(ctx context.Context, updated *domain.Order, from domain.Status) error {
	f.transitionCalls++
	if f.transitionErr != nil {
		return f.transitionErr
	}
	cur, ok := f.orders[updated.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != from {
		return domain.ErrConflict
	}
	cp := *updated
	f.orders[updated.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) RecordPayment(ctx context.Context, orderID, gatewayOrderID, gatewayPaymentID string, amountPaise int64) (*domain.Order, bool, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, false, domain.ErrNotFound
	}
	if _, seen := f.payments[gatewayPaymentID]; seen {
		cp := *o
		return &cp, false, nil
	}
	credited, err := o.CreditPayment(amountPaise, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	f.payments[gatewayPaymentID] = amountPaise
	f.orders[orderID] = &credited
	cp := credited
	return &cp, true, nil
}

type fakeRegistrationRepo struct {
	regs     map[string]*domain.Registration
	payments map[string]int64

	createErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		regs:     map[string]*domain.Registration{},
		payments: map[string]int64{},
	}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, r *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *r
	f.regs[r.ID] = &cp
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	r, ok := f.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegistrationRepo) GetByNumberAndEmail(ctx context.Context, number, email string) (*domain.Registration, error) {
	for _, r := range f.regs {
		if r.RegistrationNumber == number && r.Contact.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) RecordPayment(ctx context.Context, registrationID, gatewayOrderID, gatewayPaymentID string, amountPaise int64) (*domain.Registration, bool, error) {
	r, ok := f.regs[registrationID]
	if !ok {
		return nil, false, domain.ErrNotFound
	}
	if _, seen := f.payments[gatewayPaymentID]; seen {
		cp := *r
		return &cp, false, nil
	}
	credited, err := r.CreditPayment(amountPaise, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	credited.PaymentID = gatewayPaymentID
	f.payments[gatewayPaymentID] = amountPaise
	f.regs[registrationID] = &credited
	cp := credited
	return &cp, true, nil
}

type fakeGateway struct {
	validSig   bool
	createErr  error
	lastAmount int64
	lastNotes  map[string]string
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (*GatewayOrder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastAmount = amountPaise
	f.lastNotes = notes
	return &GatewayOrder{ID: "gw_" + receipt, AmountPaise: amountPaise, Currency: "INR", Status: "created"}, nil
}

func (f *fakeGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return f.validSig
}

func (f *fakeGateway) FetchPayment(ctx context.Context, gatewayPaymentID string) (*GatewayPayment, error) {
	return nil, domain.ErrNotFound
}

type fakeNotifier struct {
	events []NotificationEvent
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, ev NotificationEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeIdemStore struct {
	locks  map[string]bool
	values map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locks: map[string]bool{}, values: map[string]string{}}
}

func (f *fakeIdemStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	k := scope + "/" + key
	if f.locks[k] {
		return false, nil
	}
	f.locks[k] = true
	return true, nil
}

func (f *fakeIdemStore) Remember(ctx context.Context, scope, key, value string) error {
	f.values[scope+"/"+key] = value
	return nil
}

func (f *fakeIdemStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	v, ok := f.values[scope+"/"+key]
	return v, ok, nil
}

type fakeCache struct {
	statuses map[string]string
	err      error
}

func newFakeCache() *fakeCache { return &fakeCache{statuses: map[string]string{}} }

func (f *fakeCache) SetStatus(ctx context.Context, orderID, status string) error {
	if f.err != nil {
		return f.err
	}
	f.statuses[orderID] = status
	return nil
}

func (f *fakeCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	s, ok := f.statuses[orderID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return s, nil
}
