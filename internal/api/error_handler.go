package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edumarket/course-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders them as
// {"error": "<message>"}. Unexpected errors are logged and masked.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, "No token provided"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Token is not valid"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied"

	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound, "Course not found"
	case errors.Is(err, domain.ErrStudentNotFound):
		return http.StatusNotFound, "Student not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"

	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusBadRequest, "Already enrolled in this course"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, domain.ErrSlugExists):
		return http.StatusBadRequest, "Course slug already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrInvalidFileType):
		return http.StatusBadRequest, "Only JPEG, PNG, WEBP and AVIF images are allowed"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "File too large"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts, try again later"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
