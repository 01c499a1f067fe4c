// Package store keeps an in-memory mirror of the remote tables. The
// database stays the source of truth: every mutator writes through first
// and only patches the mirror on success, so readers never observe a
// state the database refused.
package store

import (
	"database/sql"
	"sync"

	"kosbackend/internal/domain/models"
	"kosbackend/internal/repositories"
)

const historyLimit = 100

type Store struct {
	mu sync.RWMutex

	UserRepo     repositories.UserRepository
	FacilityRepo repositories.FacilityRepository
	RoomRepo     repositories.RoomRepository
	BookingRepo  repositories.BookingRepository
	PaymentRepo  repositories.PaymentRepository
	HistoryRepo  repositories.HistoryRepository

	users      []models.User
	facilities []models.Facility
	rooms      []models.Room
	bookings   []models.Booking
	payments   []models.Payment
	history    []models.HistoryRecord
}

func New(db *sql.DB) *Store {
	return &Store{
		UserRepo:     repositories.UserRepository{DB: db},
		FacilityRepo: repositories.FacilityRepository{DB: db},
		RoomRepo:     repositories.RoomRepository{DB: db},
		BookingRepo:  repositories.BookingRepository{DB: db},
		PaymentRepo:  repositories.PaymentRepository{DB: db},
		HistoryRepo:  repositories.HistoryRepository{DB: db},
	}
}

// LoadAll reloads every mirror slice from the database. Called once at
// startup and periodically afterwards; on restart the mirror has no
// durability of its own.
func (s *Store) LoadAll() error {
	users, err := s.UserRepo.ListAll()
	if err != nil {
		return err
	}
	facilities, err := s.FacilityRepo.ListAll()
	if err != nil {
		return err
	}
	rooms, err := s.RoomRepo.ListAll()
	if err != nil {
		return err
	}
	links, err := s.RoomRepo.ListFacilityLinks()
	if err != nil {
		return err
	}
	bookings, err := s.BookingRepo.ListAll()
	if err != nil {
		return err
	}
	payments, err := s.PaymentRepo.ListAll()
	if err != nil {
		return err
	}
	history, err := s.HistoryRepo.ListRecent(historyLimit)
	if err != nil {
		return err
	}

	for i := range rooms {
		ids := []int64{}
		for _, l := range links {
			if l.RoomID == rooms[i].ID {
				ids = append(ids, l.FacilityID)
			}
		}
		rooms[i].FacilityIDs = ids
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.facilities = facilities
	s.rooms = rooms
	s.bookings = bookings
	s.payments = payments
	s.history = history
	return nil
}

// Clear drops tenant-sensitive state on shutdown. Rooms and facilities
// are public catalog data and stay.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.bookings = nil
	s.payments = nil
	s.history = nil
}

// ─── snapshots ───

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

func (s *Store) Facilities() []models.Facility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Facility(nil), s.facilities...)
}

func (s *Store) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, len(s.rooms))
	for i, r := range s.rooms {
		r.Image = append([]string(nil), r.Image...)
		r.FacilityIDs = append([]int64(nil), r.FacilityIDs...)
		out[i] = r
	}
	return out
}

func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Booking(nil), s.bookings...)
}

func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Payment(nil), s.payments...)
}

func (s *Store) History() []models.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.HistoryRecord(nil), s.history...)
}

// ─── lookups ───

func (s *Store) BookingByID(id int64) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (s *Store) PaymentByID(id int64) (models.Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.ID == id {
			return p, true
		}
	}
	return models.Payment{}, false
}

func (s *Store) UserName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.FullName
		}
	}
	return "Unknown"
}

func (s *Store) RoomName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r.Name
		}
	}
	return "Unknown"
}

func (s *Store) FacilityName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.facilities {
		if f.ID == id {
			return f.Name
		}
	}
	return "Unknown"
}

// BookingPayments returns every payment of one booking.
func (s *Store) BookingPayments(bookingID int64) []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Payment{}
	for _, p := range s.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out
}

type PaymentSummary struct {
	Total     int64 `json:"total"`
	Paid      int64 `json:"paid"`
	Remaining int64 `json:"remaining"`
	Pending   int   `json:"pending"`
}

func (s *Store) BookingPaymentSummary(bookingID int64) PaymentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum PaymentSummary
	for _, p := range s.payments {
		if p.BookingID != bookingID {
			continue
		}
		sum.Total += p.Amount
		if p.Status == models.PaymentPaid {
			sum.Paid += p.Amount
		}
		if p.Status == models.PaymentPending {
			sum.Pending++
		}
	}
	sum.Remaining = sum.Total - sum.Paid
	return sum
}

type Stats struct {
	TotalRooms      int   `json:"total_rooms"`
	AvailableRooms  int   `json:"available_rooms"`
	ActiveBookings  int   `json:"active_bookings"`
	PendingPayments int   `json:"pending_payments"`
	TotalRevenue    int64 `json:"total_revenue"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{TotalRooms: len(s.rooms)}
	for _, r := range s.rooms {
		if r.Status == models.RoomAvailable {
			st.AvailableRooms++
		}
	}
	for _, b := range s.bookings {
		if b.Status == models.BookingActive {
			st.ActiveBookings++
		}
	}
	for _, p := range s.payments {
		switch p.Status {
		case models.PaymentPending:
			st.PendingPayments++
		case models.PaymentPaid:
			st.TotalRevenue += p.Amount
		}
	}
	return st
}
