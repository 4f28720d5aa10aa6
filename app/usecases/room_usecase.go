package usecases

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/repositories"
)

type RoomUsecase interface {
	Create(req entities.RoomRequest) (entities.Room, error)
	Update(id int, req entities.RoomRequest) (entities.Room, error)
	Delete(id int) error
	GetByID(id int) (entities.Room, error)
	ListAll() ([]entities.Room, error)
}

type roomUsecase struct {
	roomRepo repositories.RoomRepository
}

func NewRoomUsecase(roomRepo repositories.RoomRepository) RoomUsecase {
	return &roomUsecase{roomRepo: roomRepo}
}

func (u *roomUsecase) Create(req entities.RoomRequest) (entities.Room, error) {
	return u.roomRepo.Create(req)
}

func (u *roomUsecase) Update(id int, req entities.RoomRequest) (entities.Room, error) {
	room, err := u.roomRepo.Update(id, req)
	if errors.Is(err, sql.ErrNoRows) {
		return room, &UseCaseError{Code: http.StatusNotFound, Message: "room not found"}
	}
	return room, err
}

// Delete removes the room and, through the storage cascade, every
// reservation attached to it.
func (u *roomUsecase) Delete(id int) error {
	err := u.roomRepo.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return &UseCaseError{Code: http.StatusNotFound, Message: "room not found"}
	}
	return err
}

func (u *roomUsecase) GetByID(id int) (entities.Room, error) {
	room, err := u.roomRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return room, &UseCaseError{Code: http.StatusNotFound, Message: "room not found"}
	}
	return room, err
}

func (u *roomUsecase) ListAll() ([]entities.Room, error) {
	return u.roomRepo.ListAll()
}
