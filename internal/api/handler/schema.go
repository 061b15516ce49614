package handler

import "github.com/edumarket/course-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
	// UserRole is the older name of the role field.
	UserRole string `json:"userRole"`
}

func (r registerRequest) role() domain.Role {
	if r.Role != "" {
		return domain.Role(r.Role)
	}
	return domain.Role(r.UserRole)
}

type registerResponse struct {
	Message string      `json:"message"`
	UserID  string      `json:"user_id"`
	Role    domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token  string      `json:"token"`
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

type profileResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Name  string      `json:"name"`
}

// --- Courses ---

// courseRequest is shared by create and update. Nil fields were not sent.
// There is no instructor field; ownership comes from the token.
type courseRequest struct {
	Slug                *string            `json:"slug"`
	Name                *string            `json:"name"`
	Category            *string            `json:"category"`
	Image               *string            `json:"image"`
	Type                *domain.CourseType `json:"type"`
	Rating              *float64           `json:"rating"`
	Learners            *int               `json:"learners"`
	Level               *string            `json:"level"`
	Duration            *string            `json:"duration"`
	Price               *float64           `json:"price"`
	CourseDescription   *string            `json:"course_description"`
	AboutTheCourse      *string            `json:"about_the_course"`
	InstructorName      *string            `json:"instructor_name"`
	InstructorImage     *string            `json:"instructor_image"`
	SkillsGained        []string           `json:"skills_gained"`
	Lectures            *int               `json:"lectures"`
	StudentsEnrolled    *int               `json:"students_enrolled"`
	Language            *string            `json:"language"`
	CertificateProvided *bool              `json:"certificate_provided"`
	CourseContent       []domain.Module    `json:"course_content"`
}

// patch converts the request into a partial update.
func (r courseRequest) patch() domain.CoursePatch {
	return domain.CoursePatch{
		Slug:                r.Slug,
		Name:                r.Name,
		Category:            r.Category,
		Image:               r.Image,
		Type:                r.Type,
		Rating:              r.Rating,
		Learners:            r.Learners,
		Level:               r.Level,
		Duration:            r.Duration,
		Price:               r.Price,
		CourseDescription:   r.CourseDescription,
		AboutTheCourse:      r.AboutTheCourse,
		InstructorName:      r.InstructorName,
		InstructorImage:     r.InstructorImage,
		SkillsGained:        r.SkillsGained,
		Lectures:            r.Lectures,
		StudentsEnrolled:    r.StudentsEnrolled,
		Language:            r.Language,
		CertificateProvided: r.CertificateProvided,
		CourseContent:       r.CourseContent,
	}
}

// course builds a new course from the request; unset fields keep zero values.
func (r courseRequest) course() domain.Course {
	var c domain.Course
	r.patch().Apply(&c)
	return c
}

// --- Enrollment ---

type enrollResponse struct {
	Message   string `json:"message"`
	CourseID  string `json:"course_id"`
	StudentID string `json:"student_id"`
}
