package services

import (
	"testing"
	"time"

	"kosbackend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newCheckout(t *testing.T) (CheckoutService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := CheckoutService{
		BookingRepo: repositories.BookingRepository{DB: db},
		RoomRepo:    repositories.RoomRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		HistoryRepo: repositories.HistoryRepository{DB: db},
		Now:         func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local) },
	}
	return svc, mock, func() { db.Close() }
}

func expectCheckoutFlow(mock sqlmock.Sqlmock, bookingID, roomID, pendingCancelled int64) {
	mock.ExpectQuery("SELECT id, user_id, room_id").WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "amount", "start_date", "end_date", "status",
		}).AddRow(bookingID, 2, roomID, 1500000, "2025-01-01", "2025-07-01", "active"))

	mock.ExpectExec("UPDATE bookings SET status=\\?, end_date=\\?").
		WithArgs("completed", "2025-06-15", bookingID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("UPDATE rooms SET status=\\?").
		WithArgs("available", roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("UPDATE payments SET status=\\? WHERE booking_id=\\?").
		WithArgs("cancelled", bookingID, "pending").
		WillReturnResult(sqlmock.NewResult(0, pendingCancelled))

	mock.ExpectExec("INSERT INTO history").
		WithArgs("tenant_checkout", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(20, 1))
}

func TestCheckoutCancelsPendingAndFreesRoom(t *testing.T) {
	svc, mock, done := newCheckout(t)
	defer done()

	expectCheckoutFlow(mock, 7, 3, 2)

	if err := svc.Checkout(7); err != nil {
		t.Fatalf("checkout error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutWithZeroPendingPayments(t *testing.T) {
	svc, mock, done := newCheckout(t)
	defer done()

	// cancel matches nothing; checkout still completes cleanly
	expectCheckoutFlow(mock, 8, 4, 0)

	if err := svc.Checkout(8); err != nil {
		t.Fatalf("checkout error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutUnknownBooking(t *testing.T) {
	svc, mock, done := newCheckout(t)
	defer done()

	mock.ExpectQuery("SELECT id, user_id, room_id").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "amount", "start_date", "end_date", "status",
		}))

	if err := svc.Checkout(99); err == nil {
		t.Fatalf("expected error for unknown booking")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
