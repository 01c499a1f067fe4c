package store

import "kosbackend/internal/domain/models"

// Mirror patch helpers for the settlement and checkout services. They
// assume the corresponding database write already happened and append
// no history; the services record their own event types.

func (s *Store) ApplyPaymentPaid(id int64, method, paidAt string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments[i].Status = models.PaymentPaid
			s.payments[i].Method = method
			s.payments[i].PaidAt = paidAt
			break
		}
	}
}

func (s *Store) ApplyPaymentStatus(id int64, status string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments[i].Status = status
			break
		}
	}
}

func (s *Store) ApplyPaymentAdded(p models.Payment) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
}

func (s *Store) ApplyPendingCancelled(bookingID int64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].BookingID == bookingID && s.payments[i].Status == models.PaymentPending {
			s.payments[i].Status = models.PaymentCancelled
		}
	}
}

func (s *Store) ApplyBookingEndDate(id int64, endDate string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].EndDate = endDate
			break
		}
	}
}

func (s *Store) ApplyBookingCompleted(id int64, endDate string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = models.BookingCompleted
			s.bookings[i].EndDate = endDate
			break
		}
	}
}

func (s *Store) ApplyRoomStatus(id int64, status string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			s.rooms[i].Status = status
			break
		}
	}
}

// ApplyUserAdded mirrors a registration, which writes its user row
// outside the audited CRUD path.
func (s *Store) ApplyUserAdded(u models.User) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// ApplyHistory mirrors a history row written outside the CRUD mutators.
func (s *Store) ApplyHistory(rec models.HistoryRecord) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]models.HistoryRecord{rec}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
}
