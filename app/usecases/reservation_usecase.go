package usecases

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/Pauline-hiez/reservation-salle/app/booking"
	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/repositories"
)

// ReservationUsecase drives the reservation lifecycle: every create,
// update and delete goes through rule validation, the availability
// check and the ownership gate before touching storage.
type ReservationUsecase interface {
	Create(ownerID int, req entities.ReservationRequest) (entities.Reservation, error)
	Update(id, callerID int, callerRole string, req entities.ReservationRequest) (entities.Reservation, error)
	Delete(id, callerID int, callerRole string) error
	GetByID(id int) (entities.Reservation, error)
	ListAll() ([]entities.Reservation, error)
	ListByPeriod(start, end string) ([]entities.Reservation, error)
	ListByOwner(ownerID int) ([]entities.Reservation, error)
	ListByRoom(roomID int) ([]entities.Reservation, error)
	IsAvailable(roomID int, start, end string, excludeID int) (bool, error)
}

type reservationUsecase struct {
	resRepo     repositories.ReservationRepository
	roomRepo    repositories.RoomRepository
	policy      booking.Policy
	clock       booking.Clock
	defaultRoom int
}

func NewReservationUsecase(
	resRepo repositories.ReservationRepository,
	roomRepo repositories.RoomRepository,
	policy booking.Policy,
	clock booking.Clock,
	defaultRoom int,
) ReservationUsecase {
	return &reservationUsecase{
		resRepo:     resRepo,
		roomRepo:    roomRepo,
		policy:      policy,
		clock:       clock,
		defaultRoom: defaultRoom,
	}
}

func (u *reservationUsecase) Create(ownerID int, req entities.ReservationRequest) (entities.Reservation, error) {
	start, end, err := parseWindow(req.Start, req.End)
	if err != nil {
		return entities.Reservation{}, err
	}

	roomID, err := u.resolveRoom(req.RoomID)
	if err != nil {
		return entities.Reservation{}, err
	}

	if err := u.policy.Validate(start, end, u.clock.Now()); err != nil {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	conflicts, err := u.conflicts(roomID, start, end, 0)
	if err != nil {
		return entities.Reservation{}, err
	}
	if len(conflicts) > 0 {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusConflict, Message: "time slot already reserved"}
	}

	created, err := u.resRepo.Create(entities.Reservation{
		Title:       req.Title,
		Description: req.Description,
		Start:       booking.FormatTime(start),
		End:         booking.FormatTime(end),
		RoomID:      roomID,
		OwnerID:     ownerID,
	})
	if errors.Is(err, repositories.ErrConflict) {
		// A concurrent request won the slot between our check and the
		// transactional re-check.
		return entities.Reservation{}, &UseCaseError{Code: http.StatusConflict, Message: "time slot already reserved"}
	}
	if err != nil {
		return entities.Reservation{}, err
	}
	return created, nil
}

func (u *reservationUsecase) Update(id, callerID int, callerRole string, req entities.ReservationRequest) (entities.Reservation, error) {
	existing, err := u.resRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusNotFound, Message: "reservation not found"}
	}
	if err != nil {
		return entities.Reservation{}, err
	}

	if callerRole != "admin" && existing.OwnerID != callerID {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusForbidden, Message: "you can only modify your own reservations"}
	}

	start, end, err := parseWindow(req.Start, req.End)
	if err != nil {
		return entities.Reservation{}, err
	}

	roomID := req.RoomID
	if roomID == 0 {
		roomID = existing.RoomID
	}
	if roomID != existing.RoomID {
		if roomID, err = u.resolveRoom(roomID); err != nil {
			return entities.Reservation{}, err
		}
	}

	if err := u.policy.Validate(start, end, u.clock.Now()); err != nil {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	conflicts, err := u.conflicts(roomID, start, end, id)
	if err != nil {
		return entities.Reservation{}, err
	}
	if len(conflicts) > 0 {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusConflict, Message: "time slot already reserved"}
	}

	// Ownership is never reassigned: admins may edit any reservation
	// but it stays bound to its creator.
	updated, err := u.resRepo.Update(id, entities.Reservation{
		Title:       req.Title,
		Description: req.Description,
		Start:       booking.FormatTime(start),
		End:         booking.FormatTime(end),
		RoomID:      roomID,
		OwnerID:     existing.OwnerID,
	})
	if errors.Is(err, repositories.ErrConflict) {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusConflict, Message: "time slot already reserved"}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Reservation{}, &UseCaseError{Code: http.StatusNotFound, Message: "reservation not found"}
	}
	if err != nil {
		return entities.Reservation{}, err
	}
	updated.OwnerEmail = existing.OwnerEmail
	updated.OwnerName = existing.OwnerName
	updated.CreatedAt = existing.CreatedAt
	return updated, nil
}

func (u *reservationUsecase) Delete(id, callerID int, callerRole string) error {
	existing, err := u.resRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return &UseCaseError{Code: http.StatusNotFound, Message: "reservation not found"}
	}
	if err != nil {
		return err
	}

	if callerRole != "admin" && existing.OwnerID != callerID {
		return &UseCaseError{Code: http.StatusForbidden, Message: "you can only delete your own reservations"}
	}

	err = u.resRepo.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return &UseCaseError{Code: http.StatusNotFound, Message: "reservation not found"}
	}
	return err
}

func (u *reservationUsecase) GetByID(id int) (entities.Reservation, error) {
	res, err := u.resRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return res, &UseCaseError{Code: http.StatusNotFound, Message: "reservation not found"}
	}
	return res, err
}

func (u *reservationUsecase) ListAll() ([]entities.Reservation, error) {
	return u.resRepo.ListAll()
}

func (u *reservationUsecase) ListByPeriod(start, end string) ([]entities.Reservation, error) {
	startAt, endAt, err := parseWindow(start, end)
	if err != nil {
		return nil, err
	}
	return u.resRepo.ListByPeriod(booking.FormatTime(startAt), booking.FormatTime(endAt))
}

func (u *reservationUsecase) ListByOwner(ownerID int) ([]entities.Reservation, error) {
	return u.resRepo.ListByOwner(ownerID)
}

func (u *reservationUsecase) ListByRoom(roomID int) ([]entities.Reservation, error) {
	return u.resRepo.ListByRoom(roomID)
}

// IsAvailable reports whether [start, end) is free in the room,
// optionally ignoring one reservation so an in-place edit does not
// conflict with itself.
func (u *reservationUsecase) IsAvailable(roomID int, start, end string, excludeID int) (bool, error) {
	startAt, endAt, err := parseWindow(start, end)
	if err != nil {
		return false, err
	}
	if roomID == 0 {
		roomID = u.defaultRoom
	}
	conflicts, err := u.conflicts(roomID, startAt, endAt, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// conflicts scans the room's persisted reservations and keeps the ones
// whose window overlaps the candidate, excluding excludeID when set.
func (u *reservationUsecase) conflicts(roomID int, start, end time.Time, excludeID int) ([]entities.Reservation, error) {
	existing, err := u.resRepo.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	var out []entities.Reservation
	for _, res := range existing {
		if excludeID != 0 && res.ID == excludeID {
			continue
		}
		resStart, err := booking.ParseTime(res.Start)
		if err != nil {
			return nil, err
		}
		resEnd, err := booking.ParseTime(res.End)
		if err != nil {
			return nil, err
		}
		if booking.Overlaps(start, end, resStart, resEnd) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (u *reservationUsecase) resolveRoom(roomID int) (int, error) {
	if roomID == 0 {
		roomID = u.defaultRoom
	}
	exists, err := u.roomRepo.Exists(roomID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &UseCaseError{Code: http.StatusNotFound, Message: "room not found"}
	}
	return roomID, nil
}

func parseWindow(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, &UseCaseError{Code: http.StatusBadRequest, Message: "start and end are required"}
	}
	startAt, err := booking.ParseTime(start)
	if err != nil {
		return time.Time{}, time.Time{}, &UseCaseError{Code: http.StatusBadRequest, Message: "start must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}
	endAt, err := booking.ParseTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, &UseCaseError{Code: http.StatusBadRequest, Message: "end must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}
	return startAt, endAt, nil
}
