package repositories

import (
	"database/sql"
	"time"

	"github.com/Pauline-hiez/reservation-salle/app/booking"
	"github.com/Pauline-hiez/reservation-salle/app/entities"
)

type UserRepository interface {
	Create(email, passwordHash, role string) (entities.User, error)
	// GetByEmail also returns the stored password hash for credential checks.
	GetByEmail(email string) (entities.User, string, error)
	GetByID(id int) (entities.User, error)
	ListAll() ([]entities.User, error)
	UpdateEmail(id int, email string) error
	UpdateRole(id int, role string) error
	UpdatePassword(id int, passwordHash string) error
	Delete(id int) (bool, error)
	EmailExists(email string, excludeID int) (bool, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(email, passwordHash, role string) (entities.User, error) {
	user := entities.User{
		Email:     email,
		Name:      entities.DisplayName(email),
		Role:      role,
		CreatedAt: booking.FormatTime(time.Now()),
	}
	err := r.db.QueryRow(`
		INSERT INTO users (email, password, role, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		email, passwordHash, role, user.CreatedAt,
	).Scan(&user.ID)
	return user, err
}

func (r *userRepository) GetByEmail(email string) (entities.User, string, error) {
	var user entities.User
	var hash string
	var createdAt time.Time
	err := r.db.QueryRow(`
		SELECT id, email, password, role, created_at FROM users WHERE email = $1`, email).Scan(
		&user.ID, &user.Email, &hash, &user.Role, &createdAt)
	if err != nil {
		return user, "", err
	}
	user.Name = entities.DisplayName(user.Email)
	user.CreatedAt = booking.FormatTime(createdAt)
	return user, hash, nil
}

func (r *userRepository) GetByID(id int) (entities.User, error) {
	var user entities.User
	var createdAt time.Time
	err := r.db.QueryRow(`
		SELECT id, email, role, created_at FROM users WHERE id = $1`, id).Scan(
		&user.ID, &user.Email, &user.Role, &createdAt)
	if err != nil {
		return user, err
	}
	user.Name = entities.DisplayName(user.Email)
	user.CreatedAt = booking.FormatTime(createdAt)
	return user, nil
}

func (r *userRepository) ListAll() ([]entities.User, error) {
	rows, err := r.db.Query(`
		SELECT id, email, role, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.User
	for rows.Next() {
		var user entities.User
		var createdAt time.Time
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &createdAt); err != nil {
			return nil, err
		}
		user.Name = entities.DisplayName(user.Email)
		user.CreatedAt = booking.FormatTime(createdAt)
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *userRepository) UpdateEmail(id int, email string) error {
	_, err := r.db.Exec(`UPDATE users SET email = $1 WHERE id = $2`, email, id)
	return err
}

func (r *userRepository) UpdateRole(id int, role string) error {
	_, err := r.db.Exec(`UPDATE users SET role = $1 WHERE id = $2`, role, id)
	return err
}

func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	return err
}

func (r *userRepository) Delete(id int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *userRepository) EmailExists(email string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeID).Scan(&exists)
	return exists, err
}
