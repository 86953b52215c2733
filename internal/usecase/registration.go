package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
)

type CreateRegistrationInput struct {
	UserID           string
	DeviceModel      string
	SerialNumber     string
	TermYears        int
	DeviceFeePaise   int64
	SupportFeePaise  int64
	DeliveryFeePaise int64
	PaymentMethod    string
	Contact          domain.ShippingSnapshot
}

type RegistrationStatusResult struct {
	Registration *domain.Registration
	Validity     domain.Validity
}

// Registrations bundles the service-registration flows: creation, the
// payment funnel shared with orders, and the public status lookup with
// derived validity.
type Registrations struct {
	repo             RegistrationRepo
	gateway          PaymentGateway
	notifier         Notifier
	gstRateBps       int64
	expiringSoonDays int
	now              func() time.Time
}

func NewRegistrations(repo RegistrationRepo, gateway PaymentGateway, notifier Notifier, gstRateBps int64, expiringSoonDays int) *Registrations {
	return &Registrations{
		repo:             repo,
		gateway:          gateway,
		notifier:         notifier,
		gstRateBps:       gstRateBps,
		expiringSoonDays: expiringSoonDays,
		now:              time.Now,
	}
}

func (uc *Registrations) Create(ctx context.Context, in CreateRegistrationInput) (*domain.Registration, error) {
	if in.UserID == "" {
		return nil, domain.NewValidationError("userId", "required")
	}

	now := uc.now().UTC()
	subtotal := in.DeviceFeePaise + in.SupportFeePaise + in.DeliveryFeePaise
	gst := domain.ComputeTax(subtotal, uc.gstRateBps)
	reg := &domain.Registration{
		ID:               uuid.NewString(),
		UserID:           in.UserID,
		DeviceModel:      in.DeviceModel,
		SerialNumber:     in.SerialNumber,
		TermYears:        in.TermYears,
		DeviceFeePaise:   in.DeviceFeePaise,
		SupportFeePaise:  in.SupportFeePaise,
		DeliveryFeePaise: in.DeliveryFeePaise,
		SubtotalPaise:    subtotal,
		GSTPaise:         gst,
		TotalPaise:       subtotal + gst,
		Status:           domain.StatusPending,
		PaymentStatus:    domain.PaymentPending,
		PaymentMethod:    in.PaymentMethod,
		Contact:          in.Contact,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	const maxAttempts = 3
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		reg.RegistrationNumber = newOrderNumber("REG", now)
		err = uc.repo.Create(ctx, reg)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (uc *Registrations) InitiatePayment(ctx context.Context, registrationID string) (*CheckoutDescriptor, error) {
	reg, err := uc.repo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	outstanding := reg.TotalPaise - reg.PaidPaise
	if outstanding <= 0 {
		return nil, domain.NewValidationError("registrationId", "registration is already fully paid")
	}
	gw, err := uc.gateway.CreateOrder(ctx, outstanding, reg.RegistrationNumber, map[string]string{
		"registration_id": reg.ID,
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutDescriptor{
		GatewayOrderID: gw.ID,
		AmountPaise:    gw.AmountPaise,
		Currency:       gw.Currency,
		OrderNumber:    reg.RegistrationNumber,
	}, nil
}

func (uc *Registrations) RecordPayment(ctx context.Context, registrationID string, in RecordPaymentInput) (*domain.Registration, error) {
	if in.GatewayOrderID == "" || in.GatewayPaymentID == "" {
		return nil, domain.NewValidationError("payment", "gateway order id and payment id required")
	}
	if !uc.gateway.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, domain.ErrPaymentVerificationFailed
	}

	reg, applied, err := uc.repo.RecordPayment(ctx, registrationID, in.GatewayOrderID, in.GatewayPaymentID, in.AmountPaise)
	if err != nil {
		return nil, err
	}
	if applied && reg.Status == domain.StatusPaymentReceived {
		ev := NotificationEvent{
			Event:       EventRegistrationPaymentReceived,
			OrderNumber: reg.RegistrationNumber,
			Name:        reg.Contact.Name,
			Email:       reg.Contact.Email,
			Phone:       reg.Contact.Phone,
		}
		if nerr := uc.notifier.Notify(ctx, ev); nerr != nil {
			logging.FromCtx(ctx).Error("notification dispatch failed",
				"event", ev.Event, "registration_number", reg.RegistrationNumber, "err", nerr)
		}
	}
	return reg, nil
}

// Status looks a registration up by number + contact email and attaches
// the derived validity. Expiry is computed here, at read time.
func (uc *Registrations) Status(ctx context.Context, number, email string) (*RegistrationStatusResult, error) {
	if number == "" || email == "" {
		return nil, domain.NewValidationError("number", "registration number and email required")
	}
	reg, err := uc.repo.GetByNumberAndEmail(ctx, number, email)
	if err != nil {
		return nil, err
	}
	return &RegistrationStatusResult{
		Registration: reg,
		Validity:     domain.ComputeValidity(reg.CreatedAt, reg.TermYears, uc.expiringSoonDays, uc.now().UTC()),
	}, nil
}
