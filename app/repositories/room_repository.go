package repositories

import (
	"database/sql"
	"time"

	"github.com/Pauline-hiez/reservation-salle/app/booking"
	"github.com/Pauline-hiez/reservation-salle/app/entities"
)

type RoomRepository interface {
	Create(room entities.RoomRequest) (entities.Room, error)
	Update(id int, room entities.RoomRequest) (entities.Room, error)
	Delete(id int) error
	GetByID(id int) (entities.Room, error)
	ListAll() ([]entities.Room, error)
	Exists(id int) (bool, error)
}

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(req entities.RoomRequest) (entities.Room, error) {
	room := entities.Room{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
		CreatedAt:   booking.FormatTime(time.Now()),
	}
	err := r.db.QueryRow(`
		INSERT INTO rooms (name, description, capacity, image, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		room.Name, room.Description, room.Capacity, room.ImageURL, room.Position, room.CreatedAt,
	).Scan(&room.ID)
	return room, err
}

func (r *roomRepository) Update(id int, req entities.RoomRequest) (entities.Room, error) {
	result, err := r.db.Exec(`
		UPDATE rooms SET name = $1, description = $2, capacity = $3, image = $4, position = $5
		WHERE id = $6`,
		req.Name, req.Description, req.Capacity, req.ImageURL, req.Position, id)
	if err != nil {
		return entities.Room{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return entities.Room{}, err
	}
	if affected == 0 {
		return entities.Room{}, sql.ErrNoRows
	}
	return r.GetByID(id)
}

// Delete removes the room; its reservations go with it via the
// ON DELETE CASCADE foreign key.
func (r *roomRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *roomRepository) GetByID(id int) (entities.Room, error) {
	var room entities.Room
	var createdAt time.Time
	err := r.db.QueryRow(`
		SELECT id, name, description, capacity, image, position, created_at
		FROM rooms WHERE id = $1`, id).Scan(
		&room.ID, &room.Name, &room.Description, &room.Capacity,
		&room.ImageURL, &room.Position, &createdAt)
	if err != nil {
		return room, err
	}
	room.CreatedAt = booking.FormatTime(createdAt)
	return room, nil
}

func (r *roomRepository) ListAll() ([]entities.Room, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, capacity, image, position, created_at
		FROM rooms ORDER BY position ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.Room
	for rows.Next() {
		var room entities.Room
		var createdAt time.Time
		err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.Capacity,
			&room.ImageURL, &room.Position, &createdAt)
		if err != nil {
			return nil, err
		}
		room.CreatedAt = booking.FormatTime(createdAt)
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *roomRepository) Exists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
