package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/middleware"
	"github.com/Pauline-hiez/reservation-salle/app/usecases"
)

type UserHandler struct {
	userUsecase usecases.UserUsecase
}

func NewUserHandler(userUsecase usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body entities.RegisterRequest true "Registration body"
// @Success 201 {object} entities.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req entities.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "a valid email and a password of at least 6 characters are required"})
	}

	user, token, err := h.userUsecase.Register(req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, entities.AuthResponse{Message: "registration successful", User: user, Token: token})
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body entities.Login true "Credentials"
// @Success 200 {object} entities.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req entities.Login
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	user, token, err := h.userUsecase.Login(req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, entities.AuthResponse{User: user, Token: token})
}

// Me godoc
// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Success 200 {object} entities.User
// @Security BearerAuth
// @Router /auth/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims := middleware.TokenClaims(c)
	user, err := h.userUsecase.GetProfile(claims.ID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// GetUsers godoc
// @Summary List users
// @Description Admin only
// @Tags Auth
// @Produce json
// @Success 200 {array} entities.User
// @Security BearerAuth
// @Router /auth/users [get]
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userUsecase.ListUsers()
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update a user's email, role or password
// @Description Admin only; changing your own role is rejected
// @Tags Auth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body entities.UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /auth/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	var req entities.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user fields"})
	}

	user, err := h.userUsecase.UpdateUser(id, middleware.TokenClaims(c), req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated", "user": user})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Admin only; deleting your own account is rejected
// @Tags Auth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /auth/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	if err := h.userUsecase.DeleteUser(id, middleware.TokenClaims(c)); err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
