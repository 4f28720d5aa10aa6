package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/middleware"
	"github.com/Pauline-hiez/reservation-salle/app/usecases"
)

type ReservationHandler struct {
	reservationUsecase usecases.ReservationUsecase
}

func NewReservationHandler(reservationUsecase usecases.ReservationUsecase) *ReservationHandler {
	return &ReservationHandler{reservationUsecase: reservationUsecase}
}

// CreateReservation godoc
// @Summary Create a reservation
// @Description Book a time slot in a room for the authenticated user
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body entities.ReservationRequest true "Reservation request body"
// @Success 201 {object} entities.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req entities.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title, start and end are required"})
	}

	claims := middleware.TokenClaims(c)
	reservation, err := h.reservationUsecase.Create(claims.ID, req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, entities.ReservationResponse{
		Message:     "reservation created",
		Reservation: reservation,
	})
}

// GetReservations godoc
// @Summary List all reservations
// @Tags Reservation
// @Produce json
// @Success 200 {array} entities.Reservation
// @Security BearerAuth
// @Router /reservations [get]
func (h *ReservationHandler) GetReservations(c echo.Context) error {
	reservations, err := h.reservationUsecase.ListAll()
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// GetReservationsByPeriod godoc
// @Summary List reservations inside a period
// @Tags Reservation
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD HH:MM:SS)"
// @Param end query string true "Period end (YYYY-MM-DD HH:MM:SS)"
// @Success 200 {array} entities.Reservation
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/period [get]
func (h *ReservationHandler) GetReservationsByPeriod(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start and end query parameters are required"})
	}

	reservations, err := h.reservationUsecase.ListByPeriod(start, end)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// GetMyReservations godoc
// @Summary List the authenticated user's reservations
// @Tags Reservation
// @Produce json
// @Success 200 {array} entities.Reservation
// @Security BearerAuth
// @Router /reservations/my [get]
func (h *ReservationHandler) GetMyReservations(c echo.Context) error {
	claims := middleware.TokenClaims(c)
	reservations, err := h.reservationUsecase.ListByOwner(claims.ID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// GetReservationsByRoom godoc
// @Summary List a room's reservations
// @Tags Reservation
// @Produce json
// @Param roomId path int true "Room ID"
// @Success 200 {array} entities.Reservation
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/room/{roomId} [get]
func (h *ReservationHandler) GetReservationsByRoom(c echo.Context) error {
	roomID, err := strconv.Atoi(c.Param("roomId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room id"})
	}

	reservations, err := h.reservationUsecase.ListByRoom(roomID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// CheckAvailability godoc
// @Summary Check whether a time slot is free
// @Tags Reservation
// @Produce json
// @Param start query string true "Slot start (YYYY-MM-DD HH:MM:SS)"
// @Param end query string true "Slot end (YYYY-MM-DD HH:MM:SS)"
// @Param roomId query int false "Room ID (default room when omitted)"
// @Param excludeId query int false "Reservation to ignore (in-place edit)"
// @Success 200 {object} entities.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/availability [get]
func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start and end query parameters are required"})
	}
	roomID, _ := strconv.Atoi(c.QueryParam("roomId"))
	excludeID, _ := strconv.Atoi(c.QueryParam("excludeId"))

	available, err := h.reservationUsecase.IsAvailable(roomID, start, end, excludeID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, entities.AvailabilityResponse{Available: available})
}

// GetReservationByID godoc
// @Summary Get one reservation
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} entities.Reservation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservationByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid reservation id"})
	}

	reservation, err := h.reservationUsecase.GetByID(id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// UpdateReservation godoc
// @Summary Update a reservation
// @Description Owner or admin only; the slot is re-validated excluding the reservation itself
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body entities.ReservationRequest true "New reservation fields"
// @Success 200 {object} entities.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid reservation id"})
	}

	var req entities.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title, start and end are required"})
	}

	claims := middleware.TokenClaims(c)
	reservation, err := h.reservationUsecase.Update(id, claims.ID, claims.Role, req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, entities.ReservationResponse{
		Message:     "reservation updated",
		Reservation: reservation,
	})
}

// DeleteReservation godoc
// @Summary Delete a reservation
// @Description Owner or admin only
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid reservation id"})
	}

	claims := middleware.TokenClaims(c)
	if err := h.reservationUsecase.Delete(id, claims.ID, claims.Role); err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation deleted"})
}
