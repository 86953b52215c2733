package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

type MySQLRegistrationRepo struct{ db *sql.DB }

func NewMySQLRegistrationRepo(db *sql.DB) *MySQLRegistrationRepo {
	return &MySQLRegistrationRepo{db: db}
}

func (r *MySQLRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO registrations
  (id, registration_number, user_id, device_model, serial_number, term_years,
   device_fee_paise, support_fee_paise, delivery_fee_paise, subtotal_paise, gst_paise, total_paise, paid_paise,
   status, payment_status, payment_method, payment_id,
   contact_name, contact_email, contact_phone, contact_address, contact_city, contact_state, contact_pincode,
   created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		reg.ID, reg.RegistrationNumber, reg.UserID, reg.DeviceModel, reg.SerialNumber, reg.TermYears,
		reg.DeviceFeePaise, reg.SupportFeePaise, reg.DeliveryFeePaise, reg.SubtotalPaise, reg.GSTPaise, reg.TotalPaise, reg.PaidPaise,
		reg.Status, reg.PaymentStatus, reg.PaymentMethod, nullStr(reg.PaymentID),
		reg.Contact.Name, reg.Contact.Email, reg.Contact.Phone, reg.Contact.Address,
		reg.Contact.City, reg.Contact.State, reg.Contact.Pincode,
		reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil && isDupEntry(err) {
		return domain.ErrConflict
	}
	return err
}

const registrationColumns = `
id, registration_number, user_id, device_model, serial_number, term_years,
device_fee_paise, support_fee_paise, delivery_fee_paise, subtotal_paise, gst_paise, total_paise, paid_paise,
status, payment_status, payment_method, payment_id,
contact_name, contact_email, contact_phone, contact_address, contact_city, contact_state, contact_pincode,
created_at, updated_at`

func (r *MySQLRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id))
}

func (r *MySQLRegistrationRepo) GetByNumberAndEmail(ctx context.Context, number, email string) (*domain.Registration, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE registration_number = ? AND contact_email = ?`,
		number, email))
}

func (r *MySQLRegistrationRepo) scanOne(row *sql.Row) (*domain.Registration, error) {
	var (
		reg       domain.Registration
		paymentID sql.NullString
	)
	err := row.Scan(
		&reg.ID, &reg.RegistrationNumber, &reg.UserID, &reg.DeviceModel, &reg.SerialNumber, &reg.TermYears,
		&reg.DeviceFeePaise, &reg.SupportFeePaise, &reg.DeliveryFeePaise, &reg.SubtotalPaise, &reg.GSTPaise, &reg.TotalPaise, &reg.PaidPaise,
		&reg.Status, &reg.PaymentStatus, &reg.PaymentMethod, &paymentID,
		&reg.Contact.Name, &reg.Contact.Email, &reg.Contact.Phone, &reg.Contact.Address,
		&reg.Contact.City, &reg.Contact.State, &reg.Contact.Pincode,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	reg.PaymentID = paymentID.String
	return &reg, nil
}

// RecordPayment mirrors the order payment path: unique gateway payment id,
// row lock on the registration, credit exactly once.
func (r *MySQLRegistrationRepo) RecordPayment(ctx context.Context, registrationID, gatewayOrderID, gatewayPaymentID string, amountPaise int64) (*domain.Registration, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	reg, err := r.scanOne(tx.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ? FOR UPDATE`, registrationID))
	if err != nil {
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO registration_payments (gateway_payment_id, registration_id, gateway_order_id, amount_paise, created_at)
VALUES (?,?,?,?,?)`,
		gatewayPaymentID, registrationID, gatewayOrderID, amountPaise, time.Now().UTC(),
	); err != nil {
		if isDupEntry(err) {
			return reg, false, nil
		}
		return nil, false, err
	}

	credited, err := reg.CreditPayment(amountPaise, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	credited.PaymentID = gatewayPaymentID

	if _, err := tx.ExecContext(ctx, `
UPDATE registrations SET paid_paise = ?, payment_status = ?, status = ?, payment_id = ?, updated_at = ?
WHERE id = ?`,
		credited.PaidPaise, credited.PaymentStatus, credited.Status, credited.PaymentID, credited.UpdatedAt, credited.ID,
	); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &credited, true, nil
}

var _ usecase.RegistrationRepo = (*MySQLRegistrationRepo)(nil)
