package usecases

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/middleware"
	"github.com/Pauline-hiez/reservation-salle/app/repositories"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo?access_token="

// AuthUsecase handles Google OAuth sign-in with auto-registration.
type AuthUsecase interface {
	GetGoogleLoginURL(state string) string
	ProcessGoogleLogin(code string) (entities.User, string, error)
}

type authUsecase struct {
	userRepo     repositories.UserRepository
	googleConfig *oauth2.Config
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthUsecase(userRepo repositories.UserRepository, cfg *oauth2.Config, jwtSecret []byte, tokenTTL time.Duration) AuthUsecase {
	return &authUsecase{userRepo: userRepo, googleConfig: cfg, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (u *authUsecase) GetGoogleLoginURL(state string) string {
	return u.googleConfig.AuthCodeURL(state)
}

func (u *authUsecase) ProcessGoogleLogin(code string) (entities.User, string, error) {
	token, err := u.googleConfig.Exchange(context.Background(), code)
	if err != nil {
		return entities.User{}, "", &UseCaseError{Code: http.StatusUnauthorized, Message: "google login failed"}
	}

	resp, err := http.Get(googleUserInfoURL + token.AccessToken)
	if err != nil {
		return entities.User{}, "", err
	}
	defer resp.Body.Close()

	var googleUser entities.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return entities.User{}, "", err
	}
	if googleUser.Email == "" {
		return entities.User{}, "", &UseCaseError{Code: http.StatusUnauthorized, Message: "google login failed"}
	}

	email := strings.ToLower(googleUser.Email)
	user, _, err := u.userRepo.GetByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		// First sign-in: register with an unguessable local password.
		user, err = u.userRepo.Create(email, randomPasswordHash(), "user")
	}
	if err != nil {
		return entities.User{}, "", err
	}

	jwtToken, err := middleware.GenerateToken(u.jwtSecret, user, u.tokenTTL)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, jwtToken, nil
}

func randomPasswordHash() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	hashed, _ := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	return string(hashed)
}
