package repositories

import (
	"testing"

	"kosbackend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPaymentRepo(t *testing.T) (PaymentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return PaymentRepository{DB: db}, mock, func() { db.Close() }
}

func TestMarkPaidIfUnpaidWinsRace(t *testing.T) {
	repo, mock, done := newPaymentRepo(t)
	defer done()

	mock.ExpectExec("UPDATE payments SET status=\\?, paid_at=\\?, method=\\?").
		WithArgs("paid", "2025-03-01T10:00:00Z", "Manual", int64(42), "paid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	settled, err := repo.MarkPaidIfUnpaid(42, "Manual", "2025-03-01T10:00:00Z")
	if err != nil {
		t.Fatalf("MarkPaidIfUnpaid error: %v", err)
	}
	if !settled {
		t.Fatal("expected settled=true when the row flipped")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPaidIfUnpaidLosesRace(t *testing.T) {
	repo, mock, done := newPaymentRepo(t)
	defer done()

	// already paid: the conditional WHERE matches nothing
	mock.ExpectExec("UPDATE payments SET status=\\?, paid_at=\\?, method=\\?").
		WithArgs("paid", sqlmock.AnyArg(), "Xendit", int64(42), "paid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	settled, err := repo.MarkPaidIfUnpaid(42, "Xendit", "2025-03-01T10:00:05Z")
	if err != nil {
		t.Fatalf("MarkPaidIfUnpaid error: %v", err)
	}
	if settled {
		t.Fatal("expected settled=false when another trigger won")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDUnknownPayment(t *testing.T) {
	repo, mock, done := newPaymentRepo(t)
	defer done()

	mock.ExpectQuery("SELECT id, booking_id, amount").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "amount", "status", "period", "due_date", "paid_at", "method", "callback_data",
		}))

	_, err := repo.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCancelPendingByBookingReportsCount(t *testing.T) {
	repo, mock, done := newPaymentRepo(t)
	defer done()

	mock.ExpectExec("UPDATE payments SET status=\\? WHERE booking_id=\\?").
		WithArgs("cancelled", int64(5), "pending").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.CancelPendingByBooking(5)
	if err != nil {
		t.Fatalf("CancelPendingByBooking error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 cancelled rows, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
