package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) ListAll() ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, room_id, amount, start_date, end_date, status
		FROM bookings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RoomID, &b.Amount, &b.StartDate, &b.EndDate, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	err := r.db().QueryRow(`
		SELECT id, user_id, room_id, amount, start_date, end_date, status
		FROM bookings WHERE id=? LIMIT 1`, id).
		Scan(&b.ID, &b.UserID, &b.RoomID, &b.Amount, &b.StartDate, &b.EndDate, &b.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

func (r BookingRepository) Create(b models.Booking) (models.Booking, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings (user_id, room_id, amount, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.RoomID, b.Amount, b.StartDate, b.EndDate, b.Status)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID, err = res.LastInsertId()
	return b, err
}

func (r BookingRepository) Update(id int64, patch models.BookingPatch) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if patch.UserID != nil {
		add("user_id", *patch.UserID)
	}
	if patch.RoomID != nil {
		add("room_id", *patch.RoomID)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

// UpdateEndDate pushes the booking end forward after a settlement.
func (r BookingRepository) UpdateEndDate(id int64, endDate string) error {
	_, err := r.db().Exec(`UPDATE bookings SET end_date=? WHERE id=?`, endDate, id)
	return err
}

// Complete marks the booking finished as of endDate. Idempotent.
func (r BookingRepository) Complete(id int64, endDate string) error {
	_, err := r.db().Exec(`UPDATE bookings SET status=?, end_date=? WHERE id=?`,
		models.BookingCompleted, endDate, id)
	return err
}

func (r BookingRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	return err
}
