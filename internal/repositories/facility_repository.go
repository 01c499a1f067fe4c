package repositories

import (
	"database/sql"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/domain/models"
)

type FacilityRepository struct {
	DB *sql.DB
}

func (r FacilityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FacilityRepository) ListAll() ([]models.Facility, error) {
	rows, err := r.db().Query(`SELECT id, name FROM facilities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Facility{}
	for rows.Next() {
		var f models.Facility
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r FacilityRepository) Create(name string) (models.Facility, error) {
	res, err := r.db().Exec(`INSERT INTO facilities (name) VALUES (?)`, name)
	if err != nil {
		return models.Facility{}, err
	}
	id, err := res.LastInsertId()
	return models.Facility{ID: id, Name: name}, err
}

func (r FacilityRepository) Update(id int64, name string) error {
	_, err := r.db().Exec(`UPDATE facilities SET name=? WHERE id=?`, name, id)
	return err
}

func (r FacilityRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM facilities WHERE id=?`, id)
	return err
}
