package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edumarket/course-api/internal/core/domain"
)

var errGateMisconfigured = errors.New("role gate mounted without auth gate")

// RequireRole admits callers holding role. Admins pass every gate.
func RequireRole(role domain.Role, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				log.Error().
					Str("path", c.Path()).
					Str("role", string(role)).
					Msg("no identity on request")
				return errGateMisconfigured
			}
			if !identity.Satisfies(role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
