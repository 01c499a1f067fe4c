package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PaymentRepository) ListAll() ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, amount, status, COALESCE(period,''), COALESCE(due_date,''),
		       COALESCE(paid_at,''), COALESCE(method,''), COALESCE(callback_data,'')
		FROM payments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.db().QueryRow(`
		SELECT id, booking_id, amount, status, COALESCE(period,''), COALESCE(due_date,''),
		       COALESCE(paid_at,''), COALESCE(method,''), COALESCE(callback_data,'')
		FROM payments WHERE id=? LIMIT 1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
	}
	return p, err
}

func (r PaymentRepository) Create(p models.Payment) (models.Payment, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, amount, status, period, due_date)
		VALUES (?, ?, ?, ?, ?)`,
		p.BookingID, p.Amount, p.Status, p.Period, p.DueDate)
	if err != nil {
		return models.Payment{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

func (r PaymentRepository) Update(id int64, patch models.PaymentPatch) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Period != nil {
		add("period", *patch.Period)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.Method != nil {
		add("method", *patch.Method)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE payments SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

// MarkPaidIfUnpaid flips a payment to paid only when it is not already
// paid. The conditional WHERE is the at-most-once guard for the dual
// settlement trigger (user action and webhook can race on the same id);
// callers must stop when it reports false.
func (r PaymentRepository) MarkPaidIfUnpaid(id int64, method, paidAt string) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE payments SET status=?, paid_at=?, method=?
		WHERE id=? AND status <> ?`,
		models.PaymentPaid, paidAt, method, id, models.PaymentPaid)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkExpired records a provider-side invoice expiry. The booking is
// deliberately untouched.
func (r PaymentRepository) MarkExpired(id int64) error {
	_, err := r.db().Exec(`UPDATE payments SET status=? WHERE id=?`, models.PaymentExpired, id)
	return err
}

// CancelPendingByBooking cancels every still-pending payment of a
// booking and reports how many rows changed. Idempotent.
func (r PaymentRepository) CancelPendingByBooking(bookingID int64) (int64, error) {
	res, err := r.db().Exec(`UPDATE payments SET status=? WHERE booking_id=? AND status=?`,
		models.PaymentCancelled, bookingID, models.PaymentPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AttachCallbackData stores the raw provider webhook payload for audit.
func (r PaymentRepository) AttachCallbackData(id int64, raw json.RawMessage) error {
	_, err := r.db().Exec(`UPDATE payments SET callback_data=? WHERE id=?`, string(raw), id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (models.Payment, error) {
	var (
		p   models.Payment
		raw string
	)
	if err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Status, &p.Period,
		&p.DueDate, &p.PaidAt, &p.Method, &raw); err != nil {
		return models.Payment{}, err
	}
	if strings.TrimSpace(raw) != "" {
		p.CallbackData = json.RawMessage(raw)
	}
	return p, nil
}
