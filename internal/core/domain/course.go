package domain

import (
	"fmt"
	"time"
)

// CourseType distinguishes free courses from paid ones.
type CourseType string

const (
	CourseFree CourseType = "FREE"
	CoursePaid CourseType = "PAID"
)

// Lesson is a single entry inside a course module.
type Lesson struct {
	LessonID    int    `json:"lesson_id" bson:"lesson_id"`
	LessonTitle string `json:"lesson_title" bson:"lesson_title"`
	Duration    string `json:"duration" bson:"duration"`
}

// Module groups lessons in the course syllabus.
type Module struct {
	ModuleID    int      `json:"module_id" bson:"module_id"`
	ModuleTitle string   `json:"module_title" bson:"module_title"`
	Lessons     []Lesson `json:"lessons" bson:"lessons"`
}

// InstructorSummary is the public view of a course owner.
type InstructorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Course is the catalogue aggregate. InstructorID is the owning user and is
// the sole ownership criterion for mutations.
type Course struct {
	ID                  string     `json:"id"`
	Slug                string     `json:"slug"`
	Name                string     `json:"name"`
	Category            string     `json:"category,omitempty"`
	Image               string     `json:"image,omitempty"`
	Type                CourseType `json:"type"`
	Rating              float64    `json:"rating"`
	Learners            int        `json:"learners"`
	Level               string     `json:"level,omitempty"`
	Duration            string     `json:"duration,omitempty"`
	Price               float64    `json:"price"`
	CourseDescription   string     `json:"course_description,omitempty"`
	AboutTheCourse      string     `json:"about_the_course,omitempty"`
	InstructorID        string     `json:"instructor_id"`
	InstructorName      string     `json:"instructor_name,omitempty"`
	InstructorImage     string     `json:"instructor_image,omitempty"`
	SkillsGained        []string   `json:"skills_gained"`
	Lectures            int        `json:"lectures"`
	StudentsEnrolled    int        `json:"students_enrolled"`
	Language            string     `json:"language,omitempty"`
	CertificateProvided bool       `json:"certificate_provided"`
	CourseContent       []Module   `json:"course_content"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Instructor *InstructorSummary `json:"instructor,omitempty"`
}

// Validate enforces the course field invariants. An empty Type is normalised to FREE.
func (c *Course) Validate() error {
	if c.Type == "" {
		c.Type = CourseFree
	}
	switch {
	case c.Slug == "":
		return fmt.Errorf("%w: slug is required", ErrValidation)
	case c.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case c.InstructorID == "":
		return fmt.Errorf("%w: instructor is required", ErrValidation)
	case c.Type != CourseFree && c.Type != CoursePaid:
		return fmt.Errorf("%w: type must be one of FREE PAID", ErrValidation)
	case c.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	case c.Type == CoursePaid && c.Price <= 0:
		return fmt.Errorf("%w: price is required for paid courses", ErrValidation)
	}
	return nil
}

// CoursePatch carries a partial course update. Nil fields are left untouched.
// There is deliberately no instructor field: ownership is never reassigned.
type CoursePatch struct {
	Slug                *string
	Name                *string
	Category            *string
	Image               *string
	Type                *CourseType
	Rating              *float64
	Learners            *int
	Level               *string
	Duration            *string
	Price               *float64
	CourseDescription   *string
	AboutTheCourse      *string
	InstructorName      *string
	InstructorImage     *string
	SkillsGained        []string
	Lectures            *int
	StudentsEnrolled    *int
	Language            *string
	CertificateProvided *bool
	CourseContent       []Module
}

// Apply copies every set field of p onto c.
func (p CoursePatch) Apply(c *Course) {
	setString(&c.Slug, p.Slug)
	setString(&c.Name, p.Name)
	setString(&c.Category, p.Category)
	setString(&c.Image, p.Image)
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Rating != nil {
		c.Rating = *p.Rating
	}
	setInt(&c.Learners, p.Learners)
	setString(&c.Level, p.Level)
	setString(&c.Duration, p.Duration)
	if p.Price != nil {
		c.Price = *p.Price
	}
	setString(&c.CourseDescription, p.CourseDescription)
	setString(&c.AboutTheCourse, p.AboutTheCourse)
	setString(&c.InstructorName, p.InstructorName)
	setString(&c.InstructorImage, p.InstructorImage)
	if p.SkillsGained != nil {
		c.SkillsGained = p.SkillsGained
	}
	setInt(&c.Lectures, p.Lectures)
	setInt(&c.StudentsEnrolled, p.StudentsEnrolled)
	setString(&c.Language, p.Language)
	if p.CertificateProvided != nil {
		c.CertificateProvided = *p.CertificateProvided
	}
	if p.CourseContent != nil {
		c.CourseContent = p.CourseContent
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
