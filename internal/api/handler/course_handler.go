package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edumarket/course-api/internal/api/metrics"
	"github.com/edumarket/course-api/internal/core/ports"
)

// CourseHandler serves the public catalogue and instructor course management.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /api/courses.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {array}   domain.Course
// @Failure      500  {object}  errorResponse
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get handles GET /api/courses/:slug.
//
// @Summary      Get a course by slug
// @Tags         courses
// @Produce      json
// @Param        slug  path      string  true  "Course slug"
// @Success      200   {object}  domain.Course
// @Failure      404   {object}  errorResponse
// @Router       /api/courses/{slug} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /api/courses. The caller becomes the course instructor.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body              body      courseRequest  false  "Course fields (JSON)"
// @Param        image             formData  file           false  "Course image"
// @Param        instructor_image  formData  file           false  "Instructor image"
// @Success      201               {object}  domain.Course
// @Failure      400               {object}  errorResponse
// @Failure      401               {object}  errorResponse
// @Failure      403               {object}  errorResponse
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bound, err := bindCourse(c)
	if err != nil {
		return err
	}
	defer bound.Close()

	course, err := h.service.Create(c.Request().Context(), identity, bound.req.course(), bound.images)
	if err != nil {
		return err
	}
	recordUploads(bound)
	metrics.CourseMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, course)
}

// Update handles PUT /api/courses/:id. Only the owner or an admin may update.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id                path      string         true   "Course ID"
// @Param        body              body      courseRequest  false  "Fields to change (JSON)"
// @Param        image             formData  file           false  "Course image"
// @Param        instructor_image  formData  file           false  "Instructor image"
// @Success      200               {object}  domain.Course
// @Failure      400               {object}  errorResponse
// @Failure      403               {object}  errorResponse
// @Failure      404               {object}  errorResponse
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bound, err := bindCourse(c)
	if err != nil {
		return err
	}
	defer bound.Close()

	course, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), bound.req.patch(), bound.images)
	if err != nil {
		return err
	}
	recordUploads(bound)
	metrics.CourseMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /api/courses/:id. Only the owner or an admin may delete.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	metrics.CourseMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Course deleted"})
}

func recordUploads(b *boundCourse) {
	for _, field := range b.uploadedFields() {
		metrics.ImagesUploadedTotal.WithLabelValues(field).Inc()
	}
}
