package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/edumarket/course-api/internal/api/middleware"
	"github.com/edumarket/course-api/internal/core/domain"
)

// ctxIdentity returns the caller attached by the Auth middleware. Handlers
// mounted without it fail closed with ErrMissingToken.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.ID == "" {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return identity, nil
}
