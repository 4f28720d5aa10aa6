package usecases

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
	"github.com/Pauline-hiez/reservation-salle/app/middleware"
	"github.com/Pauline-hiez/reservation-salle/app/repositories"
)

type UserUsecase interface {
	Register(req entities.RegisterRequest) (entities.User, string, error)
	Login(req entities.Login) (entities.User, string, error)
	GetProfile(id int) (entities.User, error)
	ListUsers() ([]entities.User, error)
	// UpdateUser and DeleteUser take the acting admin's identity so the
	// self-demotion and self-deletion guards can be enforced.
	UpdateUser(id int, actor *entities.Claims, req entities.UpdateUserRequest) (entities.User, error)
	DeleteUser(id int, actor *entities.Claims) error
}

type userUsecase struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserUsecase(userRepo repositories.UserRepository, jwtSecret []byte, tokenTTL time.Duration) UserUsecase {
	return &userUsecase{userRepo: userRepo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// --- 1. REGISTER ---
func (u *userUsecase) Register(req entities.RegisterRequest) (entities.User, string, error) {
	email := strings.ToLower(req.Email)

	exists, err := u.userRepo.EmailExists(email, 0)
	if err != nil {
		return entities.User{}, "", err
	}
	if exists {
		return entities.User{}, "", &UseCaseError{Code: http.StatusConflict, Message: "email already in use"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, "", err
	}

	user, err := u.userRepo.Create(email, string(hashed), "user")
	if err != nil {
		return entities.User{}, "", err
	}

	token, err := middleware.GenerateToken(u.jwtSecret, user, u.tokenTTL)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, token, nil
}

// --- 2. LOGIN ---
func (u *userUsecase) Login(req entities.Login) (entities.User, string, error) {
	user, storedHash, err := u.userRepo.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		// Hide whether the account exists.
		return entities.User{}, "", &UseCaseError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return entities.User{}, "", &UseCaseError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateToken(u.jwtSecret, user, u.tokenTTL)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, token, nil
}

func (u *userUsecase) GetProfile(id int) (entities.User, error) {
	user, err := u.userRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return user, &UseCaseError{Code: http.StatusNotFound, Message: "user not found"}
	}
	return user, err
}

func (u *userUsecase) ListUsers() ([]entities.User, error) {
	return u.userRepo.ListAll()
}

func (u *userUsecase) UpdateUser(id int, actor *entities.Claims, req entities.UpdateUserRequest) (entities.User, error) {
	existing, err := u.userRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, &UseCaseError{Code: http.StatusNotFound, Message: "user not found"}
	}
	if err != nil {
		return entities.User{}, err
	}

	// Self-action guard: an admin may not change their own role.
	if req.Role != "" && req.Role != existing.Role && id == actor.ID {
		return entities.User{}, &UseCaseError{Code: http.StatusForbidden, Message: "you cannot change your own role"}
	}

	if req.Email != "" {
		email := strings.ToLower(req.Email)
		if email != existing.Email {
			taken, err := u.userRepo.EmailExists(email, id)
			if err != nil {
				return entities.User{}, err
			}
			if taken {
				return entities.User{}, &UseCaseError{Code: http.StatusConflict, Message: "email already in use"}
			}
			if err := u.userRepo.UpdateEmail(id, email); err != nil {
				return entities.User{}, err
			}
		}
	}

	if req.Role != "" && req.Role != existing.Role {
		if err := u.userRepo.UpdateRole(id, req.Role); err != nil {
			return entities.User{}, err
		}
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return entities.User{}, err
		}
		if err := u.userRepo.UpdatePassword(id, string(hashed)); err != nil {
			return entities.User{}, err
		}
	}

	return u.userRepo.GetByID(id)
}

func (u *userUsecase) DeleteUser(id int, actor *entities.Claims) error {
	// Self-action guard: an admin may not delete their own account.
	if id == actor.ID {
		return &UseCaseError{Code: http.StatusForbidden, Message: "you cannot delete your own account"}
	}

	deleted, err := u.userRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return &UseCaseError{Code: http.StatusNotFound, Message: "user not found"}
	}
	return nil
}
