package ports

import (
	"context"
	"io"

	"github.com/edumarket/course-api/internal/core/domain"
)

// ImageUpload is a single uploaded file destined for a course image field.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CourseImages holds the optional uploads accepted on create and update.
type CourseImages struct {
	Image           *ImageUpload
	InstructorImage *ImageUpload
}

// ImageStore persists uploaded images and returns their public path.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

type CourseService interface {
	List(ctx context.Context) ([]*domain.Course, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Course, error)
	Create(ctx context.Context, identity domain.Identity, course domain.Course, images CourseImages) (*domain.Course, error)
	Update(ctx context.Context, identity domain.Identity, id string, patch domain.CoursePatch, images CourseImages) (*domain.Course, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}
