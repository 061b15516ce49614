package ports

import (
	"context"

	"github.com/edumarket/course-api/internal/core/domain"
)

// UserRepository is the credential store. Email is unique.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// AddEnrolledCourse appends courseID to the student's enrolled courses in a
	// single conditional update. It returns domain.ErrAlreadyEnrolled when the
	// course is already present and domain.ErrStudentNotFound when no student
	// document matches studentID.
	AddEnrolledCourse(ctx context.Context, studentID, courseID string) error
}
