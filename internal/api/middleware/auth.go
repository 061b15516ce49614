package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

// IdentityKey is the echo context key holding the verified domain.Identity.
const IdentityKey = "identity"

const bearerPrefix = "Bearer "

// Auth verifies the bearer token and attaches the caller's identity to the
// request context. The user record is not re-read.
func Auth(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return domain.ErrMissingToken
			}
			raw := strings.TrimSpace(header[len(bearerPrefix):])
			if raw == "" {
				return domain.ErrMissingToken
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				log.Debug().
					Err(err).
					Str("path", c.Path()).
					Msg("token rejected")
				return domain.ErrInvalidToken
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Auth, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(domain.Identity)
	return identity, ok
}
