package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"
)

type RoomRepository struct {
	DB *sql.DB
}

func (r RoomRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RoomRepository) ListAll() ([]models.Room, error) {
	rows, err := r.db().Query(`
		SELECT id, name, price, status, COALESCE(image,'[]')
		FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Room{}
	for rows.Next() {
		var (
			room models.Room
			raw  string
		)
		if err := rows.Scan(&room.ID, &room.Name, &room.Price, &room.Status, &raw); err != nil {
			return nil, err
		}
		room.Image = decodeImageList(raw)
		room.FacilityIDs = []int64{}
		out = append(out, room)
	}
	return out, rows.Err()
}

// ListFacilityLinks returns every room_facilities join row.
func (r RoomRepository) ListFacilityLinks() ([]models.RoomFacility, error) {
	rows, err := r.db().Query(`SELECT room_id, facility_id FROM room_facilities`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoomFacility{}
	for rows.Next() {
		var rf models.RoomFacility
		if err := rows.Scan(&rf.RoomID, &rf.FacilityID); err != nil {
			return nil, err
		}
		out = append(out, rf)
	}
	return out, rows.Err()
}

// Create inserts the room and its facility links in one transaction.
func (r RoomRepository) Create(room models.Room) (models.Room, error) {
	img, err := json.Marshal(imageOrEmpty(room.Image))
	if err != nil {
		return models.Room{}, err
	}

	tx, err := r.db().Begin()
	if err != nil {
		return models.Room{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO rooms (name, price, status, image) VALUES (?, ?, ?, ?)`,
		room.Name, room.Price, room.Status, string(img))
	if err != nil {
		return models.Room{}, err
	}
	room.ID, err = res.LastInsertId()
	if err != nil {
		return models.Room{}, err
	}
	for _, fid := range room.FacilityIDs {
		if _, err := tx.Exec(`INSERT INTO room_facilities (room_id, facility_id) VALUES (?, ?)`, room.ID, fid); err != nil {
			return models.Room{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.Room{}, err
	}
	room.Image = imageOrEmpty(room.Image)
	if room.FacilityIDs == nil {
		room.FacilityIDs = []int64{}
	}
	return room, nil
}

// Update patches room columns and, when FacilityIDs is present, resyncs
// the join table. Both run in one transaction so the delete-then-reinsert
// never leaves the room without its links.
func (r RoomRepository) Update(id int64, patch models.RoomPatch) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Image != nil {
		img, err := json.Marshal(imageOrEmpty(*patch.Image))
		if err != nil {
			return err
		}
		add("image", string(img))
	}

	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if len(sets) > 0 {
		args = append(args, id)
		if _, err := tx.Exec(`UPDATE rooms SET `+strings.Join(sets, ",")+` WHERE id=?`, args...); err != nil {
			return err
		}
	}
	if patch.FacilityIDs != nil {
		if _, err := tx.Exec(`DELETE FROM room_facilities WHERE room_id=?`, id); err != nil {
			return domain.ConsistencyError{Op: "room facility resync", Err: err}
		}
		for _, fid := range *patch.FacilityIDs {
			if _, err := tx.Exec(`INSERT INTO room_facilities (room_id, facility_id) VALUES (?, ?)`, id, fid); err != nil {
				return domain.ConsistencyError{Op: "room facility resync", Err: err}
			}
		}
	}
	return tx.Commit()
}

func (r RoomRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db().Exec(`UPDATE rooms SET status=? WHERE id=?`, status, id)
	return err
}

// Delete removes the room and its join rows together.
func (r RoomRepository) Delete(id int64) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM room_facilities WHERE room_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM rooms WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func decodeImageList(raw string) []string {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func imageOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
