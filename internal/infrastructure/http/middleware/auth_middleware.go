package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
)

// SessionValidator resolves a bearer token to the calling user
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*entities.User, error)
}

// EchoAuth returns an Echo middleware that validates JWT and sets
// "user_id" (uuid.UUID) and "user" (*entities.User) into Echo context
func EchoAuth(sessions SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request())
			if token == "" {
				return unauthorized(c, "Missing authorization token")
			}

			user, err := sessions.ValidateSession(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, usecaseErrors.ErrTokenExpired):
					return unauthorized(c, "Authentication token has expired")
				case errors.Is(err, usecaseErrors.ErrInvalidToken), errors.Is(err, usecaseErrors.ErrUnauthorized):
					return unauthorized(c, "Invalid or expired token")
				default:
					c.Logger().Errorf("session validation failed: %v", err)
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
				}
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)

			return next(c)
		}
	}
}

// ExtractToken reads the bearer token from the Authorization header, falling
// back to the access_token cookie
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": message})
}
