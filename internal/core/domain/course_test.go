package domain

import (
	"errors"
	"testing"
)

func TestCourse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		course  Course
		wantErr bool
	}{
		{name: "free without price", course: Course{Slug: "intro-cpp", Name: "Intro C++", InstructorID: "i1"}},
		{name: "paid with price", course: Course{Slug: "go", Name: "Go", InstructorID: "i1", Type: CoursePaid, Price: 49}},
		{name: "paid without price", course: Course{Slug: "go", Name: "Go", InstructorID: "i1", Type: CoursePaid}, wantErr: true},
		{name: "negative price", course: Course{Slug: "go", Name: "Go", InstructorID: "i1", Price: -1}, wantErr: true},
		{name: "missing slug", course: Course{Name: "Go", InstructorID: "i1"}, wantErr: true},
		{name: "missing name", course: Course{Slug: "go", InstructorID: "i1"}, wantErr: true},
		{name: "unknown type", course: Course{Slug: "go", Name: "Go", InstructorID: "i1", Type: "TRIAL"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.course
			err := c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Type == "" {
				t.Fatalf("type should default to FREE")
			}
		})
	}
}

func TestCoursePatch_Apply(t *testing.T) {
	name := "Advanced Go"
	price := 10.0
	paid := CoursePaid
	c := Course{Slug: "go", Name: "Go", InstructorID: "owner", Type: CourseFree, SkillsGained: []string{"a"}}

	CoursePatch{Name: &name, Price: &price, Type: &paid}.Apply(&c)

	if c.Name != name || c.Price != price || c.Type != CoursePaid {
		t.Fatalf("patch not applied: %+v", c)
	}
	if c.Slug != "go" || c.InstructorID != "owner" || len(c.SkillsGained) != 1 {
		t.Fatalf("unset fields changed: %+v", c)
	}
}

func TestIdentity_Satisfies(t *testing.T) {
	admin := Identity{ID: "a", Role: RoleAdmin}
	student := Identity{ID: "s", Role: RoleStudent}

	for _, r := range []Role{RoleStudent, RoleInstructor, RoleAdmin} {
		if !admin.Satisfies(r) {
			t.Fatalf("admin should satisfy %s", r)
		}
	}
	if student.Satisfies(RoleInstructor) {
		t.Fatalf("student must not satisfy instructor")
	}
	if !student.Satisfies(RoleStudent) {
		t.Fatalf("student should satisfy student")
	}
}

func TestIdentity_CanManage(t *testing.T) {
	if !(Identity{ID: "i1", Role: RoleInstructor}).CanManage("i1") {
		t.Fatalf("owner should manage own course")
	}
	if (Identity{ID: "i2", Role: RoleInstructor}).CanManage("i1") {
		t.Fatalf("non-owner must not manage course")
	}
	if !(Identity{ID: "x", Role: RoleAdmin}).CanManage("i1") {
		t.Fatalf("admin should manage any course")
	}
	if (Identity{Role: RoleInstructor}).CanManage("") {
		t.Fatalf("empty ids must not match")
	}
}

func TestUser_IsEnrolled(t *testing.T) {
	u := &User{Role: RoleStudent, Student: &StudentProfile{EnrolledCourses: []string{"c1"}}}
	if !u.IsEnrolled("c1") || u.IsEnrolled("c2") {
		t.Fatalf("unexpected enrollment check result")
	}
	instructor := &User{Role: RoleInstructor}
	if instructor.IsEnrolled("c1") || instructor.EnrolledCourses() != nil {
		t.Fatalf("instructor has no enrollments")
	}
}
