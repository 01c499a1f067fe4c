package store

import (
	"kosbackend/internal/domain/models"
	"kosbackend/internal/utils"
)

// appendHistoryLocked writes one audit record and prepends it to the
// mirror. The entity write already succeeded at this point, so a failed
// audit insert is logged rather than unwound.
func (s *Store) appendHistoryLocked(eventType string, data map[string]any) {
	rec, err := s.HistoryRepo.Insert(eventType, data)
	if err != nil {
		utils.LogEvent("", "store", "history", "insert "+eventType+" failed: "+err.Error())
		return
	}
	s.history = append([]models.HistoryRecord{rec}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
}

// ─── users ───

func (s *Store) AddUser(u models.User) (models.User, error) {
	row, err := s.UserRepo.Create(u)
	if err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, row)
	s.appendHistoryLocked(models.EventUserCreated, map[string]any{"user": row.FullName})
	return row, nil
}

func (s *Store) UpdateUser(id int64, patch models.UserPatch) error {
	if err := s.UserRepo.Update(id, patch); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	name := ""
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		applyString(&s.users[i].Name, patch.Name)
		applyString(&s.users[i].Email, patch.Email)
		applyString(&s.users[i].Password, patch.Password)
		applyString(&s.users[i].FullName, patch.FullName)
		applyString(&s.users[i].Phone, patch.Phone)
		applyString(&s.users[i].UserType, patch.UserType)
		name = s.users[i].FullName
		break
	}
	s.appendHistoryLocked(models.EventUserUpdated, map[string]any{"user": name})
	return nil
}

func (s *Store) DeleteUser(id int64) error {
	name := s.UserName(id)
	if err := s.UserRepo.Delete(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = dropByID(s.users, id, func(u models.User) int64 { return u.ID })
	s.appendHistoryLocked(models.EventUserDeleted, map[string]any{"user": name})
	return nil
}

// ─── facilities ───

func (s *Store) AddFacility(name string) (models.Facility, error) {
	row, err := s.FacilityRepo.Create(name)
	if err != nil {
		return models.Facility{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities = append(s.facilities, row)
	s.appendHistoryLocked(models.EventFacilityCreated, map[string]any{"facility": row.Name})
	return row, nil
}

func (s *Store) UpdateFacility(id int64, name string) error {
	if err := s.FacilityRepo.Update(id, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.facilities {
		if s.facilities[i].ID == id {
			s.facilities[i].Name = name
			break
		}
	}
	s.appendHistoryLocked(models.EventFacilityUpdated, map[string]any{"facility": name})
	return nil
}

func (s *Store) DeleteFacility(id int64) error {
	name := s.FacilityName(id)
	if err := s.FacilityRepo.Delete(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities = dropByID(s.facilities, id, func(f models.Facility) int64 { return f.ID })
	s.appendHistoryLocked(models.EventFacilityDeleted, map[string]any{"facility": name})
	return nil
}

// ─── rooms ───

func (s *Store) AddRoom(room models.Room) (models.Room, error) {
	row, err := s.RoomRepo.Create(room)
	if err != nil {
		return models.Room{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = append(s.rooms, row)
	s.appendHistoryLocked(models.EventRoomCreated, map[string]any{"room": row.Name})
	return row, nil
}

func (s *Store) UpdateRoom(id int64, patch models.RoomPatch) error {
	if err := s.RoomRepo.Update(id, patch); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	name := ""
	for i := range s.rooms {
		if s.rooms[i].ID != id {
			continue
		}
		applyString(&s.rooms[i].Name, patch.Name)
		if patch.Price != nil {
			s.rooms[i].Price = *patch.Price
		}
		applyString(&s.rooms[i].Status, patch.Status)
		if patch.Image != nil {
			s.rooms[i].Image = append([]string(nil), *patch.Image...)
		}
		if patch.FacilityIDs != nil {
			s.rooms[i].FacilityIDs = append([]int64(nil), *patch.FacilityIDs...)
		}
		name = s.rooms[i].Name
		break
	}
	s.appendHistoryLocked(models.EventRoomUpdated, map[string]any{"room": name})
	return nil
}

func (s *Store) DeleteRoom(id int64) error {
	name := s.RoomName(id)
	if err := s.RoomRepo.Delete(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = dropByID(s.rooms, id, func(r models.Room) int64 { return r.ID })
	s.appendHistoryLocked(models.EventRoomDeleted, map[string]any{"room": name})
	return nil
}

// ─── bookings ───

func (s *Store) AddBooking(b models.Booking) (models.Booking, error) {
	row, err := s.BookingRepo.Create(b)
	if err != nil {
		return models.Booking{}, err
	}
	user := s.UserName(row.UserID)
	room := s.RoomName(row.RoomID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, row)
	s.appendHistoryLocked(models.EventBookingCreated, map[string]any{
		"booking_id": row.ID, "user": user, "room": room,
	})
	return row, nil
}

func (s *Store) UpdateBooking(id int64, patch models.BookingPatch) error {
	if err := s.BookingRepo.Update(id, patch); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID != id {
			continue
		}
		if patch.UserID != nil {
			s.bookings[i].UserID = *patch.UserID
		}
		if patch.RoomID != nil {
			s.bookings[i].RoomID = *patch.RoomID
		}
		if patch.Amount != nil {
			s.bookings[i].Amount = *patch.Amount
		}
		applyString(&s.bookings[i].StartDate, patch.StartDate)
		applyString(&s.bookings[i].EndDate, patch.EndDate)
		applyString(&s.bookings[i].Status, patch.Status)
		break
	}
	s.appendHistoryLocked(models.EventBookingUpdated, map[string]any{"booking_id": id})
	return nil
}

func (s *Store) DeleteBooking(id int64) error {
	if err := s.BookingRepo.Delete(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = dropByID(s.bookings, id, func(b models.Booking) int64 { return b.ID })
	s.appendHistoryLocked(models.EventBookingDeleted, map[string]any{"booking_id": id})
	return nil
}

// ─── payments ───

func (s *Store) AddPayment(p models.Payment) (models.Payment, error) {
	row, err := s.PaymentRepo.Create(p)
	if err != nil {
		return models.Payment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, row)
	s.appendHistoryLocked(models.EventPaymentCreated, map[string]any{
		"payment_id": row.ID, "amount": row.Amount,
	})
	return row, nil
}

func (s *Store) UpdatePayment(id int64, patch models.PaymentPatch) error {
	if err := s.PaymentRepo.Update(id, patch); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	status := ""
	for i := range s.payments {
		if s.payments[i].ID != id {
			continue
		}
		applyString(&s.payments[i].Status, patch.Status)
		applyString(&s.payments[i].Period, patch.Period)
		applyString(&s.payments[i].DueDate, patch.DueDate)
		applyString(&s.payments[i].Method, patch.Method)
		status = s.payments[i].Status
		break
	}
	s.appendHistoryLocked(models.EventPaymentUpdated, map[string]any{
		"payment_id": id, "status": status,
	})
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func dropByID[T any](in []T, id int64, idOf func(T) int64) []T {
	out := in[:0]
	for _, v := range in {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}
