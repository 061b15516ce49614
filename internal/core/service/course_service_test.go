package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

var (
	owner    = domain.Identity{ID: "inst-1", Role: domain.RoleInstructor}
	stranger = domain.Identity{ID: "inst-2", Role: domain.RoleInstructor}
	admin    = domain.Identity{ID: "admin-1", Role: domain.RoleAdmin}
)

type courseFixture struct {
	courses *stubCourseRepo
	users   *stubUserRepo
	images  *stubImageStore
	svc     *CourseService
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		courses: newStubCourseRepo(),
		users:   newStubUserRepo(),
		images:  &stubImageStore{},
	}
	f.svc = NewCourseService(f.courses, f.users, f.images, discardLogger)
	f.users.put(&domain.User{ID: owner.ID, Name: "Ivy", Email: "ivy@x.com", Role: domain.RoleInstructor})
	return f
}

func (f *courseFixture) seed(t *testing.T) *domain.Course {
	t.Helper()
	c, err := f.svc.Create(context.Background(), owner, domain.Course{Slug: "intro-cpp", Name: "Intro C++"}, ports.CourseImages{})
	require.NoError(t, err)
	return c
}

func TestCourseService_Create_SetsOwnerFromIdentity(t *testing.T) {
	f := newCourseFixture()

	created, err := f.svc.Create(context.Background(), owner, domain.Course{
		Slug:         "intro-cpp",
		Name:         "Intro C++",
		InstructorID: "someone-else",
	}, ports.CourseImages{})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, created.InstructorID)
	assert.Equal(t, domain.CourseFree, created.Type)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCourseService_Create_DerivesSlug(t *testing.T) {
	f := newCourseFixture()

	created, err := f.svc.Create(context.Background(), owner, domain.Course{Name: "Intro to C++ Programming"}, ports.CourseImages{})
	require.NoError(t, err)
	assert.Equal(t, "intro-to-c-programming", created.Slug)
}

func TestCourseService_Create_Validation(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.Create(context.Background(), owner, domain.Course{Slug: "go", Name: "Go", Type: domain.CoursePaid}, ports.CourseImages{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.courses.courses)
}

func TestCourseService_Create_DuplicateSlug(t *testing.T) {
	f := newCourseFixture()
	f.seed(t)

	_, err := f.svc.Create(context.Background(), owner, domain.Course{Slug: "intro-cpp", Name: "Other"}, ports.CourseImages{})
	assert.ErrorIs(t, err, domain.ErrSlugExists)
}

func TestCourseService_Create_StoresImages(t *testing.T) {
	f := newCourseFixture()

	created, err := f.svc.Create(context.Background(), owner, domain.Course{Slug: "go", Name: "Go"}, ports.CourseImages{
		Image:           &ports.ImageUpload{Filename: "cover.png", Content: strings.NewReader("png")},
		InstructorImage: &ports.ImageUpload{Filename: "me.jpg", Content: strings.NewReader("jpg")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/cover.png", created.Image)
	assert.Equal(t, "/uploads/me.jpg", created.InstructorImage)
}

func TestCourseService_Create_RemovesImagesWhenWriteFails(t *testing.T) {
	f := newCourseFixture()
	f.courses.createErr = errStoreDown

	_, err := f.svc.Create(context.Background(), owner, domain.Course{Slug: "go", Name: "Go"}, ports.CourseImages{
		Image: &ports.ImageUpload{Filename: "cover.png", Content: strings.NewReader("png")},
	})
	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []string{"/uploads/cover.png"}, f.images.removed)
}

func TestCourseService_Create_RejectedImage(t *testing.T) {
	f := newCourseFixture()
	f.images.saveErr = domain.ErrInvalidFileType

	_, err := f.svc.Create(context.Background(), owner, domain.Course{Slug: "go", Name: "Go"}, ports.CourseImages{
		Image: &ports.ImageUpload{Filename: "notes.txt", Content: strings.NewReader("text")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidFileType)
	assert.Empty(t, f.courses.courses)
}

func TestCourseService_Update_ByOwner(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	name := "Intro C++ (2nd edition)"
	updated, err := f.svc.Update(context.Background(), owner, c.ID, domain.CoursePatch{Name: &name}, ports.CourseImages{})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, owner.ID, updated.InstructorID)
}

func TestCourseService_Update_ByAdmin(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	lang := "en"
	updated, err := f.svc.Update(context.Background(), admin, c.ID, domain.CoursePatch{Language: &lang}, ports.CourseImages{})
	require.NoError(t, err)
	assert.Equal(t, "en", updated.Language)
	assert.Equal(t, owner.ID, updated.InstructorID, "admin edits must not change ownership")
}

func TestCourseService_Update_ForbiddenLeavesCourseUnchanged(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	name := "Hijacked"
	_, err := f.svc.Update(context.Background(), stranger, c.ID, domain.CoursePatch{Name: &name}, ports.CourseImages{
		Image: &ports.ImageUpload{Filename: "x.png", Content: strings.NewReader("png")},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := f.courses.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro C++", stored.Name)
	assert.Empty(t, f.images.saved, "images must not be stored before authorization")
}

func TestCourseService_Update_NotFound(t *testing.T) {
	f := newCourseFixture()

	name := "x"
	_, err := f.svc.Update(context.Background(), owner, "missing", domain.CoursePatch{Name: &name}, ports.CourseImages{})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseService_Update_ValidationLeavesCourseUnchanged(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	paid := domain.CoursePaid
	_, err := f.svc.Update(context.Background(), owner, c.ID, domain.CoursePatch{Type: &paid}, ports.CourseImages{})
	require.ErrorIs(t, err, domain.ErrValidation)

	stored, _ := f.courses.FindByID(context.Background(), c.ID)
	assert.Equal(t, domain.CourseFree, stored.Type)
}

func TestCourseService_Update_RemovesImagesWhenWriteFails(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)
	f.courses.updateErr = errStoreDown

	_, err := f.svc.Update(context.Background(), owner, c.ID, domain.CoursePatch{}, ports.CourseImages{
		Image: &ports.ImageUpload{Filename: "new.png", Content: strings.NewReader("png")},
	})
	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []string{"/uploads/new.png"}, f.images.removed)
}

func TestCourseService_Delete(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	require.ErrorIs(t, f.svc.Delete(context.Background(), stranger, c.ID), domain.ErrForbidden)
	_, err := f.courses.FindByID(context.Background(), c.ID)
	require.NoError(t, err, "forbidden delete must leave course in place")

	require.NoError(t, f.svc.Delete(context.Background(), owner, c.ID))
	_, err = f.courses.FindByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), admin, c.ID), domain.ErrCourseNotFound)
}

func TestCourseService_Delete_ByAdmin(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	require.NoError(t, f.svc.Delete(context.Background(), admin, c.ID))
}

func TestCourseService_GetBySlug_AttachesInstructor(t *testing.T) {
	f := newCourseFixture()
	f.seed(t)

	c, err := f.svc.GetBySlug(context.Background(), "intro-cpp")
	require.NoError(t, err)
	require.NotNil(t, c.Instructor)
	assert.Equal(t, domain.InstructorSummary{ID: owner.ID, Name: "Ivy", Email: "ivy@x.com"}, *c.Instructor)

	_, err = f.svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseService_List_ToleratesInstructorLookupFailure(t *testing.T) {
	f := newCourseFixture()
	f.seed(t)
	f.users.err = errStoreDown

	courses, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Nil(t, courses[0].Instructor)
}

func TestCourseService_Update_KeepsTimestamps(t *testing.T) {
	f := newCourseFixture()
	c := f.seed(t)

	time.Sleep(time.Millisecond)
	updated, err := f.svc.Update(context.Background(), owner, c.ID, domain.CoursePatch{}, ports.CourseImages{})
	require.NoError(t, err)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(c.UpdatedAt) || updated.UpdatedAt.Equal(c.UpdatedAt))
}
