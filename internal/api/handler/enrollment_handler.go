package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edumarket/course-api/internal/api/metrics"
	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Enroll handles POST /api/courses/:id/enroll.
//
// @Summary      Enroll in a course
// @Tags         enrollment
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  enrollResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Enroll(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			metrics.EnrollmentsTotal.WithLabelValues("already_enrolled").Inc()
		} else {
			metrics.EnrollmentsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}
	metrics.EnrollmentsTotal.WithLabelValues("enrolled").Inc()

	return c.JSON(http.StatusOK, enrollResponse{
		Message:   "Successfully enrolled in the course",
		CourseID:  result.CourseID,
		StudentID: result.StudentID,
	})
}

// MyCourses handles GET /api/users/mycourses.
//
// @Summary      Courses the caller is enrolled in
// @Tags         enrollment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Course
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/mycourses [get]
func (h *EnrollmentHandler) MyCourses(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	courses, err := h.service.MyCourses(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}
