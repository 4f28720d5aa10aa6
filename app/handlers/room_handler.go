package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/usecases"
)

type RoomHandler struct {
	roomUsecase usecases.RoomUsecase
}

func NewRoomHandler(roomUsecase usecases.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

// GetRooms godoc
// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {array} entities.Room
// @Router /rooms [get]
func (h *RoomHandler) GetRooms(c echo.Context) error {
	rooms, err := h.roomUsecase.ListAll()
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoomByID godoc
// @Summary Get one room
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} entities.Room
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoomByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room id"})
	}

	room, err := h.roomUsecase.GetByID(id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// CreateRoom godoc
// @Summary Create a room
// @Description Admin only
// @Tags Room
// @Accept json
// @Produce json
// @Param request body entities.RoomRequest true "Room request body"
// @Success 201 {object} entities.RoomResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req entities.RoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and a positive capacity are required"})
	}

	room, err := h.roomUsecase.Create(req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, entities.RoomResponse{Message: "room created", Room: room})
}

// UpdateRoom godoc
// @Summary Update a room
// @Description Admin only
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body entities.RoomRequest true "Room request body"
// @Success 200 {object} entities.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room id"})
	}

	var req entities.RoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and a positive capacity are required"})
	}

	room, err := h.roomUsecase.Update(id, req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, entities.RoomResponse{Message: "room updated", Room: room})
}

// DeleteRoom godoc
// @Summary Delete a room and its reservations
// @Description Admin only
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room id"})
	}

	if err := h.roomUsecase.Delete(id); err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted"})
}
