package domain

import "errors"

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("token is not valid")
	ErrForbidden    = errors.New("access denied")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrCourseNotFound  = errors.New("course not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrSlugExists      = errors.New("course slug already exists")
	ErrValidation      = errors.New("validation failed")

	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
)
