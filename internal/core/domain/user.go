package domain

import (
	"slices"
	"time"
)

// Role tags a user account and drives authorization.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// StudentProfile is the role-specific payload carried only by student accounts.
type StudentProfile struct {
	EnrolledCourses []string `json:"enrolled_courses"`
}

// User models a registered account. Student is nil unless Role is RoleStudent.
type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role"`
	Student      *StudentProfile `json:"student,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// EnrolledCourses returns the ordered course ids the user is enrolled in.
func (u *User) EnrolledCourses() []string {
	if u == nil || u.Student == nil {
		return nil
	}
	return u.Student.EnrolledCourses
}

// IsEnrolled compares by course id only.
func (u *User) IsEnrolled(courseID string) bool {
	return slices.Contains(u.EnrolledCourses(), courseID)
}
