package services

import (
	"testing"
	"time"

	"kosbackend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSettlement(t *testing.T) (SettlementService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := SettlementService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		HistoryRepo: repositories.HistoryRepository{DB: db},
		Now:         func() time.Time { return time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func paymentRow(id, bookingID, amount int64, status, period, dueDate string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "amount", "status", "period", "due_date", "paid_at", "method", "callback_data",
	}).AddRow(id, bookingID, amount, status, period, dueDate, "", "", "")
}

func TestSettleExtendsBookingAndCreatesNextPayment(t *testing.T) {
	svc, mock, done := newSettlement(t)
	defer done()

	// payment 42: Rp1.500.000 for "Mar 2025", booking 5 ends 2025-03-31
	mock.ExpectQuery("SELECT id, booking_id, amount, status").WithArgs(int64(42)).
		WillReturnRows(paymentRow(42, 5, 1500000, "pending", "Mar 2025", "2025-03-31"))

	mock.ExpectExec("UPDATE payments SET status=\\?, paid_at=\\?, method=\\?").
		WithArgs("paid", sqlmock.AnyArg(), "OVO", int64(42), "paid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO history").
		WithArgs("payment_received", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))

	mock.ExpectQuery("SELECT id, user_id, room_id").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "amount", "start_date", "end_date", "status",
		}).AddRow(5, 2, 3, 1500000, "2025-01-01", "2025-03-31", "active"))

	// Mar 31 + 1 month clamps to Apr 30
	mock.ExpectExec("UPDATE bookings SET end_date=\\?").
		WithArgs("2025-04-30", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(5), int64(1500000), "pending", "Apr 2025", "2025-04-30").
		WillReturnResult(sqlmock.NewResult(77, 1))

	mock.ExpectExec("INSERT INTO history").
		WithArgs("booking_extended", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	result, err := svc.Settle(42, "OVO")
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if !result.Settled {
		t.Fatalf("expected settled=true")
	}
	if result.NewEndDate != "2025-04-30" {
		t.Fatalf("new end date %q, want 2025-04-30", result.NewEndDate)
	}
	if result.NextPayment.ID != 77 || result.NextPayment.Status != "pending" {
		t.Fatalf("unexpected next payment: %+v", result.NextPayment)
	}
	if result.NextPayment.DueDate != result.NewEndDate {
		t.Fatalf("next payment due %q must equal new end date %q", result.NextPayment.DueDate, result.NewEndDate)
	}
	if result.NextPayment.Period != "Apr 2025" {
		t.Fatalf("next period %q, want Apr 2025", result.NextPayment.Period)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettleAlreadyPaidPerformsNoFurtherWrites(t *testing.T) {
	svc, mock, done := newSettlement(t)
	defer done()

	mock.ExpectQuery("SELECT id, booking_id, amount, status").WithArgs(int64(42)).
		WillReturnRows(paymentRow(42, 5, 1500000, "paid", "Mar 2025", "2025-03-31"))

	// the conditional update matches no rows: another trigger won
	mock.ExpectExec("UPDATE payments SET status=\\?, paid_at=\\?, method=\\?").
		WithArgs("paid", sqlmock.AnyArg(), "Xendit", int64(42), "paid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := svc.Settle(42, "Xendit")
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if result.Settled {
		t.Fatalf("expected settled=false for already-paid payment")
	}

	// no history inserts, no booking reads or writes, no new payment
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettleUnknownPayment(t *testing.T) {
	svc, mock, done := newSettlement(t)
	defer done()

	mock.ExpectQuery("SELECT id, booking_id, amount, status").WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "amount", "status", "period", "due_date", "paid_at", "method", "callback_data",
		}))

	if _, err := svc.Settle(999, "OVO"); err == nil {
		t.Fatalf("expected error for unknown payment")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
