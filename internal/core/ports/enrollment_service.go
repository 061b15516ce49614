package ports

import (
	"context"

	"github.com/edumarket/course-api/internal/core/domain"
)

// EnrollmentResult confirms a successful enrollment.
type EnrollmentResult struct {
	CourseID  string
	StudentID string
}

type EnrollmentService interface {
	Enroll(ctx context.Context, courseID string, student domain.Identity) (*EnrollmentResult, error)
	// MyCourses returns the caller's enrolled courses in enrollment order.
	MyCourses(ctx context.Context, identity domain.Identity) ([]*domain.Course, error)
}
