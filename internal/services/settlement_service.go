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

// SettlementService handles the mark-paid / extend-booking flow. It is
// invoked from two paths that can race on the same payment id: the
// authenticated "mark as paid" action and the provider webhook. The
// conditional update in PaymentRepo.MarkPaidIfUnpaid makes the whole
// routine at-most-once; a losing trigger performs zero writes.
type SettlementService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	HistoryRepo repositories.HistoryRepository
	Mirror      *store.Store
	RequestID   string
	Now         func() time.Time
}

type SettlementResult struct {
	Settled     bool
	NewEndDate  string
	NextPayment models.Payment
}

// Settle marks the payment paid, extends the booking end date by one
// calendar month (day clamped, see utils.AddMonthClamped) and creates
// the next period's pending payment with due_date equal to the new end.
func (s SettlementService) Settle(paymentID int64, method string) (SettlementResult, error) {
	if paymentID <= 0 {
		return SettlementResult{}, domain.ValidationError{Field: "payment_id", Msg: "id tidak valid"}
	}

	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return SettlementResult{}, err
	}

	paidAt := s.now().UTC().Format(time.RFC3339)
	settled, err := s.PaymentRepo.MarkPaidIfUnpaid(paymentID, method, paidAt)
	if err != nil {
		return SettlementResult{}, err
	}
	if !settled {
		// already paid elsewhere; the other trigger owns the extension
		utils.LogEvent(s.RequestID, "settlement", "settle",
			fmt.Sprintf("payment_id=%d already paid, skipping", paymentID))
		return SettlementResult{}, nil
	}
	s.Mirror.ApplyPaymentPaid(paymentID, method, paidAt)

	s.record(models.EventPaymentReceived, map[string]any{
		"payment_id": paymentID,
		"amount":     payment.Amount,
		"period":     payment.Period,
		"method":     method,
	})

	booking, err := s.BookingRepo.GetByID(payment.BookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			// paid but nothing to extend; matches a booking deleted mid-flight
			utils.LogEvent(s.RequestID, "settlement", "settle",
				fmt.Sprintf("payment_id=%d has no booking, extension skipped", paymentID))
			return SettlementResult{Settled: true}, nil
		}
		return SettlementResult{Settled: true}, err
	}

	end, err := utils.ParseDate(booking.EndDate)
	if err != nil {
		return SettlementResult{Settled: true},
			domain.ValidationError{Field: "end_date", Msg: "tanggal tidak valid", Err: err}
	}
	newEnd := utils.AddMonthClamped(end)
	newEndStr := utils.FormatDate(newEnd)

	if err := s.BookingRepo.UpdateEndDate(booking.ID, newEndStr); err != nil {
		return SettlementResult{Settled: true}, domain.ConsistencyError{Op: "settlement", Err: err}
	}
	s.Mirror.ApplyBookingEndDate(booking.ID, newEndStr)

	next, err := s.PaymentRepo.Create(models.Payment{
		BookingID: booking.ID,
		Amount:    booking.Amount,
		Status:    models.PaymentPending,
		Period:    utils.PeriodLabel(newEnd),
		DueDate:   newEndStr,
	})
	if err != nil {
		return SettlementResult{Settled: true, NewEndDate: newEndStr},
			domain.ConsistencyError{Op: "settlement", Err: err}
	}
	s.Mirror.ApplyPaymentAdded(next)

	s.record(models.EventBookingExtended, map[string]any{
		"booking_id": booking.ID,
		"new_end":    newEndStr,
	})

	utils.LogEvent(s.RequestID, "settlement", "settle",
		fmt.Sprintf("payment_id=%d booking_id=%d new_end=%s next_payment=%d",
			paymentID, booking.ID, newEndStr, next.ID))

	return SettlementResult{Settled: true, NewEndDate: newEndStr, NextPayment: next}, nil
}

func (s SettlementService) record(eventType string, data map[string]any) {
	rec, err := s.HistoryRepo.Insert(eventType, data)
	if err != nil {
		utils.LogEvent(s.RequestID, "settlement", "history", eventType+" insert failed: "+err.Error())
		return
	}
	s.Mirror.ApplyHistory(rec)
}

func (s SettlementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
