package entities

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the public view of a user. The password hash never leaves the
// repository layer.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

type Claims struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

var nameReplacer = strings.NewReplacer("-", " ", ".", " ", "_", " ")

// DisplayName derives a human-readable name from the local part of an
// email address ("jean-pierre.durand@x.fr" -> "jean pierre durand").
func DisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return nameReplacer.Replace(local)
}
