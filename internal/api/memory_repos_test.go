package api

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/edumarket/course-api/internal/core/domain"
)

// memUsers and memCourses back the router tests with real services.

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]domain.User
	count int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]domain.User{}} }

func (r *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.count++
	stored := *u
	stored.ID = fmt.Sprintf("u%d", r.count)
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Student != nil {
		u.Student = &domain.StudentProfile{EnrolledCourses: slices.Clone(u.Student.EnrolledCourses)}
	}
	return &u, nil
}

func (r *memUsers) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, id := range ids {
		if u, err := r.FindByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUsers) AddEnrolledCourse(_ context.Context, studentID, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[studentID]
	if !ok || u.Student == nil {
		return domain.ErrStudentNotFound
	}
	if slices.Contains(u.Student.EnrolledCourses, courseID) {
		return domain.ErrAlreadyEnrolled
	}
	u.Student = &domain.StudentProfile{EnrolledCourses: append(slices.Clone(u.Student.EnrolledCourses), courseID)}
	r.byID[studentID] = u
	return nil
}

type memCourses struct {
	mu    sync.Mutex
	byID  map[string]domain.Course
	order []string
	count int
}

func newMemCourses() *memCourses { return &memCourses{byID: map[string]domain.Course{}} }

func (r *memCourses) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Slug == c.Slug {
			return nil, domain.ErrSlugExists
		}
	}
	r.count++
	stored := *c
	stored.ID = fmt.Sprintf("c%d", r.count)
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return &stored, nil
}

func (r *memCourses) FindByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return &c, nil
}

func (r *memCourses) FindBySlug(_ context.Context, slug string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (r *memCourses) FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error) {
	out := []*domain.Course{}
	for _, id := range ids {
		if c, err := r.FindByID(ctx, id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCourses) List(ctx context.Context) ([]*domain.Course, error) {
	r.mu.Lock()
	ids := slices.Clone(r.order)
	r.mu.Unlock()
	return r.FindByIDs(ctx, ids)
}

func (r *memCourses) Update(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return nil, domain.ErrCourseNotFound
	}
	r.byID[c.ID] = *c
	stored := *c
	return &stored, nil
}

func (r *memCourses) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}
