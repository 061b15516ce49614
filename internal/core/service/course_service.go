package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

// CourseService implements the course catalogue and its ownership rules.
type CourseService struct {
	courses ports.CourseRepository
	users   ports.UserRepository
	images  ports.ImageStore
	log     zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, users ports.UserRepository, images ports.ImageStore, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, users: users, images: images, log: log}
}

// List returns every course with its instructor summary attached.
func (s *CourseService) List(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	s.attachInstructors(ctx, courses)
	return courses, nil
}

// GetBySlug returns a single course with its instructor summary attached.
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	course, err := s.courses.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.attachInstructors(ctx, []*domain.Course{course})
	return course, nil
}

// Create stores a new course owned by identity. Any instructor value present
// on the input is overwritten with the caller's id.
func (s *CourseService) Create(ctx context.Context, identity domain.Identity, course domain.Course, images ports.CourseImages) (*domain.Course, error) {
	course.ID = ""
	course.InstructorID = identity.ID
	if course.Slug == "" {
		course.Slug = slug.Make(course.Name)
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.storeImages(ctx, images, &course.Image, &course.InstructorImage)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	created, err := s.courses.Create(ctx, &course)
	if err != nil {
		s.discardImages(ctx, stored)
		return nil, err
	}

	s.log.Info().Str("course_id", created.ID).Str("slug", created.Slug).Str("instructor_id", identity.ID).Msg("course created")
	return created, nil
}

// Update applies patch to the course after the existence and ownership
// checks have passed. Uploaded images are stored only after those checks.
func (s *CourseService) Update(ctx context.Context, identity domain.Identity, id string, patch domain.CoursePatch, images ports.CourseImages) (*domain.Course, error) {
	course, err := s.ownedCourse(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	updated := *course
	patch.Apply(&updated)
	updated.InstructorID = course.InstructorID
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.storeImages(ctx, images, &updated.Image, &updated.InstructorImage)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	saved, err := s.courses.Update(ctx, &updated)
	if err != nil {
		s.discardImages(ctx, stored)
		return nil, err
	}

	s.log.Info().Str("course_id", id).Str("by", identity.ID).Msg("course updated")
	return saved, nil
}

// Delete removes the course after the existence and ownership checks.
func (s *CourseService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.ownedCourse(ctx, identity, id); err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("course_id", id).Str("by", identity.ID).Msg("course deleted")
	return nil
}

// ownedCourse loads the course and verifies that identity owns it or is admin.
func (s *CourseService) ownedCourse(ctx context.Context, identity domain.Identity, id string) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanManage(course.InstructorID) {
		return nil, domain.ErrForbidden
	}
	return course, nil
}

func (s *CourseService) storeImages(ctx context.Context, images ports.CourseImages, image, instructorImage *string) ([]string, error) {
	var stored []string
	for _, u := range []struct {
		upload *ports.ImageUpload
		dst    *string
	}{
		{images.Image, image},
		{images.InstructorImage, instructorImage},
	} {
		if u.upload == nil {
			continue
		}
		if s.images == nil {
			s.discardImages(ctx, stored)
			return nil, fmt.Errorf("store image: no image store configured")
		}
		path, err := s.images.Save(ctx, u.upload.Filename, u.upload.Content)
		if err != nil {
			s.discardImages(ctx, stored)
			return nil, err
		}
		stored = append(stored, path)
		*u.dst = path
	}
	return stored, nil
}

// discardImages removes freshly stored files when the course write failed.
func (s *CourseService) discardImages(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.images.Remove(ctx, p); err != nil {
			s.log.Warn().Err(err).Str("path", p).Msg("failed to remove orphaned image")
		}
	}
}

// attachInstructors resolves instructor summaries. Lookup failures are logged
// and leave the summary empty.
func (s *CourseService) attachInstructors(ctx context.Context, courses []*domain.Course) {
	if s.users == nil || len(courses) == 0 {
		return
	}
	ids := make([]string, 0, len(courses))
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.InstructorID]; ok || c.InstructorID == "" {
			continue
		}
		seen[c.InstructorID] = struct{}{}
		ids = append(ids, c.InstructorID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load course instructors")
		return
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, c := range courses {
		if u, ok := byID[c.InstructorID]; ok {
			c.Instructor = &domain.InstructorSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
}
