package ports

import (
	"context"

	"github.com/edumarket/course-api/internal/core/domain"
)

// CourseRepository defines persistence operations for courses. Slug is unique.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Course, error)
	// FindByIDs returns the courses that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
