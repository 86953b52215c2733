package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

// duplicate-key error number in MySQL
const mysqlErrDupEntry = 1062

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create inserts the order, its items, and clears the user's cart in one
// transaction. A duplicate order number maps to domain.ErrConflict so the
// use case can regenerate and retry.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders
  (id, order_number, user_id, subtotal_paise, tax_paise, total_paise, paid_paise,
   status, payment_status,
   ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
   created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.OrderNumber, o.UserID, o.SubtotalPaise, o.TaxPaise, o.TotalPaise, o.PaidPaise,
		o.Status, o.PaymentStatus,
		o.Shipping.Name, o.Shipping.Email, o.Shipping.Phone, o.Shipping.Address,
		o.Shipping.City, o.Shipping.State, o.Shipping.Pincode,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isDupEntry(err) {
			return domain.ErrConflict
		}
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, product_name, price_paise, quantity)
VALUES (?,?,?,?,?)`,
			o.ID, it.ProductID, it.ProductName, it.PricePaise, it.Quantity,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, o.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOrder(ctx, r.db, id, false)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *MySQLOrderRepo) getOrder(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Order, error) {
	query := `
SELECT id, order_number, user_id, subtotal_paise, tax_paise, total_paise, paid_paise,
       status, payment_status,
       ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
       tracking_number, shipping_carrier, tracking_url, rejection_reason, admin_notes,
       created_at, updated_at, shipped_at, delivered_at
FROM orders WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		o                           domain.Order
		tracking, carrier, trackURL sql.NullString
		rejectReason, adminNotes    sql.NullString
		shippedAt, deliveredAt      sql.NullTime
	)
	err := q.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.SubtotalPaise, &o.TaxPaise, &o.TotalPaise, &o.PaidPaise,
		&o.Status, &o.PaymentStatus,
		&o.Shipping.Name, &o.Shipping.Email, &o.Shipping.Phone, &o.Shipping.Address,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.Pincode,
		&tracking, &carrier, &trackURL, &rejectReason, &adminNotes,
		&o.CreatedAt, &o.UpdatedAt, &shippedAt, &deliveredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.TrackingNumber = tracking.String
	o.ShippingCarrier = carrier.String
	o.TrackingURL = trackURL.String
	o.RejectionReason = rejectReason.String
	o.AdminNotes = adminNotes.String
	if shippedAt.Valid {
		t := shippedAt.Time
		o.ShippedAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		o.DeliveredAt = &t
	}

	rows, err := q.QueryContext(ctx, `
SELECT product_id, product_name, price_paise, quantity
FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.PricePaise, &it.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// ApplyTransition writes the full transition payload guarded by the
// expected current status. Two concurrent admin actions race on this
// update; the loser's compare misses and it gets domain.ErrConflict.
func (r *MySQLOrderRepo) ApplyTransition(ctx context.Context, updated *domain.Order, from domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders
SET status = ?, tracking_number = ?, shipping_carrier = ?, tracking_url = ?,
    rejection_reason = ?, admin_notes = ?,
    updated_at = ?, shipped_at = ?, delivered_at = ?
WHERE id = ? AND status = ?`,
		updated.Status,
		nullStr(updated.TrackingNumber), nullStr(updated.ShippingCarrier), nullStr(updated.TrackingURL),
		nullStr(updated.RejectionReason), nullStr(updated.AdminNotes),
		updated.UpdatedAt, nullTime(updated.ShippedAt), nullTime(updated.DeliveredAt),
		updated.ID, from,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	// Nothing matched: unknown id or a status mismatch.
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, updated.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrConflict
}

// RecordPayment credits a verified payment exactly once. The
// order_payments table is unique on gateway_payment_id: a duplicate insert
// means the payment was already applied, and the call becomes a read.
func (r *MySQLOrderRepo) RecordPayment(ctx context.Context, orderID, gatewayOrderID, gatewayPaymentID string, amountPaise int64) (*domain.Order, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	o, err := r.getOrder(ctx, tx, orderID, true)
	if err != nil {
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO order_payments (gateway_payment_id, order_id, gateway_order_id, amount_paise, created_at)
VALUES (?,?,?,?,?)`,
		gatewayPaymentID, orderID, gatewayOrderID, amountPaise, time.Now().UTC(),
	); err != nil {
		if isDupEntry(err) {
			return o, false, nil
		}
		return nil, false, err
	}

	credited, err := o.CreditPayment(amountPaise, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE orders SET paid_paise = ?, payment_status = ?, status = ?, updated_at = ?
WHERE id = ?`,
		credited.PaidPaise, credited.PaymentStatus, credited.Status, credited.UpdatedAt, credited.ID,
	); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &credited, true, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
