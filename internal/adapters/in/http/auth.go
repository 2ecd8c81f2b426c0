package http

import (
	"errors"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"dispatch/internal/core/domain/model/kernel"
)

// userIDContextKey is where the authenticated user's ID is stored on the
// echo context after the JWT middleware runs.
const userIDContextKey = "authUserID"

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidAuthorization = errors.New("invalid authorization header")
	errInvalidToken         = errors.New("invalid token")
)

// JWTAuth returns echo middleware that validates an HS256 bearer token and
// stores the caller's user ID (the "sub" claim) on the request context.
// Requests without a valid token get 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := parseBearerToken(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// parseBearerToken validates the Authorization header and extracts the user
// ID from the token subject.
func parseBearerToken(header, secret string) (kernel.UUID, error) {
	if header == "" {
		return kernel.UUID{}, errMissingAuthorization
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return kernel.UUID{}, errInvalidAuthorization
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
	if err != nil || !token.Valid {
		return kernel.UUID{}, errInvalidToken
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, errInvalidToken
	}

	return userID, nil
}

// authenticatedUserID reads the user ID the JWT middleware stored.
func authenticatedUserID(c echo.Context) (kernel.UUID, error) {
	userID, ok := c.Get(userIDContextKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errMissingAuthorization
	}
	return userID, nil
}
