package user

import (
	"database/sql"
	"time"

	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveUser(u *User) error {
	k, err := ksuid.NewRandom()
	if err != nil {
		return err
	}
	u.ID = k.String()
	u.CreatedAt = time.Now().UTC()
	_, err = r.db.Exec(
		`INSERT INTO users (id, email, first_name, last_name, password_hash, role, is_admin, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.Role,
		u.IsAdmin,
		u.CreatedAt,
	)
	return err
}

func (r *Repository) GetUser(userID string) (User, error) {
	row := r.db.QueryRow(`SELECT id, email, first_name, last_name, password_hash, role, is_admin, created_at FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

func (r *Repository) GetUserByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT id, email, first_name, last_name, password_hash, role, is_admin, created_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *Repository) DeleteUser(userID string) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role, &u.IsAdmin, &u.CreatedAt)
	return u, err
}
