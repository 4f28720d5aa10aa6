package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Pauline-hiez/reservation-salle/app/booking"
	"github.com/Pauline-hiez/reservation-salle/app/entities"
)

// ErrConflict is returned when the check-and-write transaction finds the
// requested window already taken.
var ErrConflict = errors.New("time slot already reserved")

type ReservationRepository interface {
	Create(res entities.Reservation) (entities.Reservation, error)
	Update(id int, res entities.Reservation) (entities.Reservation, error)
	Delete(id int) error
	GetByID(id int) (entities.Reservation, error)
	ListAll() ([]entities.Reservation, error)
	ListByPeriod(start, end string) ([]entities.Reservation, error)
	ListByOwner(ownerID int) ([]entities.Reservation, error)
	ListByRoom(roomID int) ([]entities.Reservation, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `
	r.id, r.title, r.description, r.start_at, r.end_at, r.room_id, r.user_id, r.created_at, u.email
	FROM reservations r
	LEFT JOIN users u ON r.user_id = u.id`

// conflictWhere is the SQL transcription of booking.Overlaps over the
// half-open [start_at, end_at) windows of one room. Placeholders:
// $1 room, $2 candidate end, $3 candidate start, $4 excluded id.
const conflictWhere = `
	WHERE room_id = $1 AND start_at < $2 AND end_at > $3 AND id <> $4`

// isSerializationFailure reports whether Postgres aborted the
// transaction because a concurrent writer committed first (SQLSTATE
// 40001) or the deadlock detector broke a cycle (40P01). Either way
// the caller lost the slot.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}

// unsupportedIsolation reports whether the driver rejected the explicit
// isolation level. SQLite does, and runs serializable regardless.
func unsupportedIsolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "isolation")
}

// begin opens the transaction wrapping the availability check and the
// write, so concurrent requests for the same window cannot both pass
// the check. The downgrade to a default transaction only happens when
// the driver does not support the isolation option at all; any other
// BeginTx failure is surfaced.
func (r *reservationRepository) begin() (*sql.Tx, error) {
	tx, err := r.db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if unsupportedIsolation(err) {
		return r.db.Begin()
	}
	return tx, err
}

func (r *reservationRepository) Create(res entities.Reservation) (entities.Reservation, error) {
	tx, err := r.begin()
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.QueryRow(`SELECT COUNT(*) FROM reservations`+conflictWhere,
		res.RoomID, res.End, res.Start, 0).Scan(&conflicts)
	if err != nil {
		return res, err
	}
	if conflicts > 0 {
		return res, ErrConflict
	}

	res.CreatedAt = booking.FormatTime(time.Now())
	err = tx.QueryRow(`
		INSERT INTO reservations (title, description, start_at, end_at, room_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		res.Title, res.Description, res.Start, res.End, res.RoomID, res.OwnerID, res.CreatedAt,
	).Scan(&res.ID)
	if err != nil {
		if isSerializationFailure(err) {
			return res, ErrConflict
		}
		return res, err
	}
	// Under serializable isolation the losing writer surfaces here, at
	// commit time, not at the COUNT above.
	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return res, ErrConflict
		}
		return res, err
	}
	return res, nil
}

func (r *reservationRepository) Update(id int, res entities.Reservation) (entities.Reservation, error) {
	tx, err := r.begin()
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.QueryRow(`SELECT COUNT(*) FROM reservations`+conflictWhere,
		res.RoomID, res.End, res.Start, id).Scan(&conflicts)
	if err != nil {
		return res, err
	}
	if conflicts > 0 {
		return res, ErrConflict
	}

	result, err := tx.Exec(`
		UPDATE reservations SET title = $1, description = $2, start_at = $3, end_at = $4, room_id = $5
		WHERE id = $6`,
		res.Title, res.Description, res.Start, res.End, res.RoomID, id)
	if err != nil {
		if isSerializationFailure(err) {
			return res, ErrConflict
		}
		return res, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return res, err
	}
	if affected == 0 {
		return res, sql.ErrNoRows
	}
	res.ID = id
	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return res, ErrConflict
		}
		return res, err
	}
	return res, nil
}

func (r *reservationRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM reservations WHERE id = $1`, id)
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

func (r *reservationRepository) GetByID(id int) (entities.Reservation, error) {
	row := r.db.QueryRow(`SELECT `+reservationColumns+` WHERE r.id = $1`, id)
	return scanReservation(row)
}

func (r *reservationRepository) ListAll() ([]entities.Reservation, error) {
	rows, err := r.db.Query(`SELECT ` + reservationColumns + ` ORDER BY r.start_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *reservationRepository) ListByPeriod(start, end string) ([]entities.Reservation, error) {
	rows, err := r.db.Query(`SELECT `+reservationColumns+`
		WHERE r.start_at >= $1 AND r.end_at <= $2 ORDER BY r.start_at ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *reservationRepository) ListByOwner(ownerID int) ([]entities.Reservation, error) {
	rows, err := r.db.Query(`SELECT `+reservationColumns+`
		WHERE r.user_id = $1 ORDER BY r.start_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *reservationRepository) ListByRoom(roomID int) ([]entities.Reservation, error) {
	rows, err := r.db.Query(`SELECT `+reservationColumns+`
		WHERE r.room_id = $1 ORDER BY r.start_at ASC`, roomID)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (entities.Reservation, error) {
	var res entities.Reservation
	var start, end, createdAt time.Time
	var email sql.NullString

	err := row.Scan(&res.ID, &res.Title, &res.Description, &start, &end,
		&res.RoomID, &res.OwnerID, &createdAt, &email)
	if err != nil {
		return res, err
	}
	res.Start = booking.FormatTime(start)
	res.End = booking.FormatTime(end)
	res.CreatedAt = booking.FormatTime(createdAt)
	if email.Valid {
		res.OwnerEmail = email.String
		res.OwnerName = entities.DisplayName(email.String)
	}
	return res, nil
}

func scanReservations(rows *sql.Rows) ([]entities.Reservation, error) {
	defer rows.Close()
	var out []entities.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
