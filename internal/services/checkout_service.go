package services

import (
	"fmt"
	"time"

	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"
	"kosbackend/internal/repositories"
	"kosbackend/internal/store"
	"kosbackend/internal/utils"
)

// CheckoutService handles tenant move-out: complete the booking, free
// the room, cancel leftover pending payments and record the event. The
// four writes are not one database transaction; every step is itself
// idempotent so a failed checkout can simply be re-run.
type CheckoutService struct {
	BookingRepo repositories.BookingRepository
	RoomRepo    repositories.RoomRepository
	PaymentRepo repositories.PaymentRepository
	HistoryRepo repositories.HistoryRepository
	Mirror      *store.Store
	RequestID   string
	Now         func() time.Time
}

func (s CheckoutService) Checkout(bookingID int64) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}

	today := utils.FormatDate(s.now())

	if err := s.BookingRepo.Complete(bookingID, today); err != nil {
		return err
	}
	s.Mirror.ApplyBookingCompleted(bookingID, today)

	if err := s.RoomRepo.UpdateStatus(booking.RoomID, models.RoomAvailable); err != nil {
		return domain.ConsistencyError{Op: "checkout", Err: err}
	}
	s.Mirror.ApplyRoomStatus(booking.RoomID, models.RoomAvailable)

	cancelled, err := s.PaymentRepo.CancelPendingByBooking(bookingID)
	if err != nil {
		return domain.ConsistencyError{Op: "checkout", Err: err}
	}
	s.Mirror.ApplyPendingCancelled(bookingID)

	rec, err := s.HistoryRepo.Insert(models.EventTenantCheckout, map[string]any{
		"booking_id": bookingID,
		"user":       s.userName(booking.UserID),
		"room":       s.roomName(booking.RoomID),
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "checkout", "history", "insert failed: "+err.Error())
	} else {
		s.Mirror.ApplyHistory(rec)
	}

	utils.LogEvent(s.RequestID, "checkout", "checkout",
		fmt.Sprintf("booking_id=%d room_id=%d cancelled_pending=%d", bookingID, booking.RoomID, cancelled))
	return nil
}

func (s CheckoutService) userName(id int64) string {
	if s.Mirror == nil {
		return ""
	}
	return s.Mirror.UserName(id)
}

func (s CheckoutService) roomName(id int64) string {
	if s.Mirror == nil {
		return ""
	}
	return s.Mirror.RoomName(id)
}

func (s CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
