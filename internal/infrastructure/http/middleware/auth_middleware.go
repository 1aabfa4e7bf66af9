package middleware

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/adapter/dto/common"
	"github.com/johnquangdev/meetingmind/pkg/jwt"
)

// Echo context keys set by EchoAuth
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that verifies the bearer token and
// sets "user_id" (the token subject) and "email" into the Echo context
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return unauthorized(c, errors.ErrUnauthenticated())
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrTokenExpired) {
					return unauthorized(c, errors.ErrTokenExpired())
				}
				return unauthorized(c, errors.ErrInvalidToken())
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(EmailKey, claims.Email)

			return next(c)
		}
	}
}

// UserID returns the verified caller identity, or "" outside EchoAuth
func UserID(c echo.Context) string {
	userID, _ := c.Get(UserIDKey).(string)
	return userID
}

// Email returns the verified caller email when the token carried one
func Email(c echo.Context) string {
	email, _ := c.Get(EmailKey).(string)
	return email
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, common.NewErrorResponse(appErr))
}
