package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamsite/content-api/internal/core/service"
)

// StaticToken gates admin routes on the shared write secret carried in the
// Authorization header. A "Bearer " prefix is accepted but not required.
func StaticToken(gate *service.AuthGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if after, ok := strings.CutPrefix(token, "Bearer "); ok {
				token = after
			}

			if err := gate.Authorize(token); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			return next(c)
		}
	}
}
