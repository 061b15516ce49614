package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/edumarket/course-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Student != nil {
		clone.Student = &domain.StudentProfile{EnrolledCourses: slices.Clone(u.Student.EnrolledCourses)}
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

// AddEnrolledCourse mirrors the conditional update of the Mongo repository.
func (r *stubUserRepo) AddEnrolledCourse(_ context.Context, studentID, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	u, ok := r.users[studentID]
	if !ok || u.Role != domain.RoleStudent {
		return domain.ErrStudentNotFound
	}
	if u.Student == nil {
		u.Student = &domain.StudentProfile{}
	}
	if slices.Contains(u.Student.EnrolledCourses, courseID) {
		return domain.ErrAlreadyEnrolled
	}
	u.Student.EnrolledCourses = append(u.Student.EnrolledCourses, courseID)
	return nil
}

func (r *stubUserRepo) put(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
}

// ---------------------------------------------------------------------------
// In-memory course repository
// ---------------------------------------------------------------------------

type stubCourseRepo struct {
	mu        sync.Mutex
	courses   map[string]*domain.Course
	nextID    int
	createErr error
	updateErr error
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func cloneCourse(c *domain.Course) *domain.Course {
	clone := *c
	clone.SkillsGained = slices.Clone(c.SkillsGained)
	clone.CourseContent = slices.Clone(c.CourseContent)
	return &clone
}

func (r *stubCourseRepo) slugTaken(slug, exceptID string) bool {
	for id, c := range r.courses {
		if c.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.slugTaken(c.Slug, "") {
		return nil, domain.ErrSlugExists
	}
	r.nextID++
	clone := cloneCourse(c)
	clone.ID = fmt.Sprintf("course-%d", r.nextID)
	r.courses[clone.ID] = cloneCourse(clone)
	return clone, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return cloneCourse(c), nil
}

func (r *stubCourseRepo) FindBySlug(_ context.Context, slug string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Slug == slug {
			return cloneCourse(c), nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Course
	// reverse order to prove callers do not rely on repository ordering
	for i := len(ids) - 1; i >= 0; i-- {
		if c, ok := r.courses[ids[i]]; ok {
			out = append(out, cloneCourse(c))
		}
	}
	return out, nil
}

func (r *stubCourseRepo) List(_ context.Context) ([]*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, cloneCourse(c))
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.courses[c.ID]; !ok {
		return nil, domain.ErrCourseNotFound
	}
	if r.slugTaken(c.Slug, c.ID) {
		return nil, domain.ErrSlugExists
	}
	r.courses[c.ID] = cloneCourse(c)
	return cloneCourse(c), nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *stubCourseRepo) put(c *domain.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = cloneCourse(c)
}

// ---------------------------------------------------------------------------
// Image store and login limiter
// ---------------------------------------------------------------------------

type stubImageStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (s *stubImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	p := "/uploads/" + filename
	s.saved = append(s.saved, p)
	return p, nil
}

func (s *stubImageStore) Remove(_ context.Context, p string) error {
	s.removed = append(s.removed, p)
	return nil
}

type stubLimiter struct {
	max      int
	failures map[string]int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: make(map[string]int)}
}

func (l *stubLimiter) Allowed(_ context.Context, email string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[email] < l.max, nil
}

func (l *stubLimiter) Fail(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	delete(l.failures, email)
	return nil
}

var errStoreDown = errors.New("store unavailable")
