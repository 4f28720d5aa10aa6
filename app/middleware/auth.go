package middleware

import (
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Pauline-hiez/reservation-salle/app/entities"
)

const claimsContextKey = "claims"

// GenerateToken signs an HS256 token carrying {id, email, role}.
func GenerateToken(secret []byte, user entities.User, ttl time.Duration) (string, error) {
	claims := &entities.Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// JWTAuth authenticates the request from the Authorization header and
// stores the typed claims in the echo context.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing authorization header"})
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := &entities.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// AdminOnly rejects authenticated callers whose role is not admin.
// It must run after JWTAuth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := TokenClaims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing authorization header"})
			}
			if claims.Role != "admin" {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "admin role required"})
			}
			return next(c)
		}
	}
}

// TokenClaims returns the claims stored by JWTAuth, or nil on
// unauthenticated routes.
func TokenClaims(c echo.Context) *entities.Claims {
	claims, _ := c.Get(claimsContextKey).(*entities.Claims)
	return claims
}
