package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/domain/models"
	"kosbackend/internal/utils"
)

type HistoryRepository struct {
	DB *sql.DB
}

func (r HistoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert appends one audit record and returns the stored row.
func (r HistoryRepository) Insert(eventType string, data map[string]any) (models.HistoryRecord, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return models.HistoryRecord{}, err
	}
	createdAt := utils.NowUTC().Format("2006-01-02 15:04:05")
	res, err := r.db().Exec(`INSERT INTO history (event_type, data, created_at) VALUES (?, ?, ?)`,
		eventType, string(raw), createdAt)
	if err != nil {
		return models.HistoryRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.HistoryRecord{}, err
	}
	return models.HistoryRecord{
		ID:        id,
		EventType: eventType,
		Data:      raw,
		CreatedAt: createdAt,
	}, nil
}

// ListRecent returns the newest records first, truncated for display.
func (r HistoryRepository) ListRecent(limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db().Query(`
		SELECT id, event_type, COALESCE(data,'{}'), COALESCE(created_at,'')
		FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HistoryRecord{}
	for rows.Next() {
		var (
			h   models.HistoryRecord
			raw string
		)
		if err := rows.Scan(&h.ID, &h.EventType, &raw, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Data = json.RawMessage(raw)
		out = append(out, h)
	}
	return out, rows.Err()
}
