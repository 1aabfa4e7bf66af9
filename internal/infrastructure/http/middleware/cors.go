package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORS sets the cross-origin header set on every response of a route and
// answers preflight requests itself. It must run before authentication.
func CORS(allowedOrigin string, methods ...string) echo.MiddlewareFunc {
	allowMethods := strings.Join(methods, ",") + "," + http.MethodOptions

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, allowedOrigin)
			h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type,Authorization")
			h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
