package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

// EnrollmentService records student enrollments as course references on the
// student's own document.
type EnrollmentService struct {
	courses ports.CourseRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewEnrollmentService(courses ports.CourseRepository, users ports.UserRepository, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{courses: courses, users: users, log: log}
}

// Enroll adds courseID to the student's enrolled courses. Checks run in order
// and the first failure wins: course exists, student exists, not enrolled.
// The role is enforced by the route's role gate.
//
// The final append is a conditional update in the repository, so a concurrent
// duplicate that slips past the in-memory check still fails with
// ErrAlreadyEnrolled instead of writing a second entry.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID string, student domain.Identity) (*ports.EnrollmentResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, student.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("enroll: %w", err)
	}

	if user.IsEnrolled(course.ID) {
		return nil, domain.ErrAlreadyEnrolled
	}

	if err := s.users.AddEnrolledCourse(ctx, user.ID, course.ID); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", course.ID).Str("student_id", user.ID).Msg("student enrolled")
	return &ports.EnrollmentResult{CourseID: course.ID, StudentID: user.ID}, nil
}

// MyCourses returns the caller's enrolled courses in enrollment order. Courses
// deleted since enrollment are skipped.
func (s *EnrollmentService) MyCourses(ctx context.Context, identity domain.Identity) ([]*domain.Course, error) {
	user, err := s.users.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	ids := user.EnrolledCourses()
	if len(ids) == 0 {
		return []*domain.Course{}, nil
	}

	found, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("my courses: %w", err)
	}
	byID := make(map[string]*domain.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	out := make([]*domain.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
