package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) ListAll() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, email, password, COALESCE(full_name,''), COALESCE(phone,''), user_type
		FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.UserType); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, password, COALESCE(full_name,''), COALESCE(phone,''), user_type
		FROM users WHERE email=? LIMIT 1`, strings.TrimSpace(email)).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.UserType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

func (r UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, strings.TrimSpace(email)).Scan(&count)
	return count > 0, err
}

func (r UserRepository) Create(u models.User) (models.User, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password, full_name, phone, user_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Password, u.FullName, u.Phone, u.UserType)
	if err != nil {
		return models.User{}, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func (r UserRepository) Update(id int64, patch models.UserPatch) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Password != nil {
		add("password", *patch.Password)
	}
	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.UserType != nil {
		add("user_type", *patch.UserType)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE users SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

func (r UserRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}
