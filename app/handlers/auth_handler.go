package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/usecases"
)

// TODO: generate a per-session state value once a session store exists.
const oauthState = "reservation-salle-oauth-state"

type AuthHandler struct {
	authUsecase usecases.AuthUsecase
}

func NewAuthHandler(authUsecase usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// GoogleLogin godoc
// @Summary Redirect to the Google consent screen
// @Tags Auth
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	return c.Redirect(http.StatusTemporaryRedirect, h.authUsecase.GetGoogleLoginURL(oauthState))
}

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, auto-registers first-time users and returns a token
// @Tags Auth
// @Produce json
// @Success 200 {object} entities.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if c.QueryParam("state") != oauthState {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid oauth state"})
	}
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing authorization code"})
	}
	if decoded, err := url.QueryUnescape(code); err == nil {
		code = decoded
	}

	user, token, err := h.authUsecase.ProcessGoogleLogin(code)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, entities.AuthResponse{Message: "google login successful", User: user, Token: token})
}
