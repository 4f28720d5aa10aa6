package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/usecases"
)

// toHTTPError maps usecase errors to their HTTP status. Anything that
// is not a UseCaseError is an infrastructure failure: it gets logged
// and answered with a generic 500.
func toHTTPError(c echo.Context, err error) error {
	if e, ok := err.(*usecases.UseCaseError); ok {
		return c.JSON(e.Code, echo.Map{"message": e.Message})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
}
