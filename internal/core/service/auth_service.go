package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo    ports.UserRepository
	tokens  ports.TokenService
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService wires the service. limiter may be nil to disable throttling.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a student or instructor account. Any role other than
// instructor registers a student; admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if role != domain.RoleInstructor {
		role = domain.RoleStudent
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == domain.RoleStudent {
		user.Student = &domain.StudentProfile{EnrolledCourses: []string{}}
	}

	// The unique index still decides a concurrent duplicate; the repository
	// maps it to ErrEmailExists.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.allowed(ctx, email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	return &ports.LoginResult{Token: token, User: user}, nil
}

// Profile returns the account behind identity.
func (s *AuthService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) allowed(ctx context.Context, email string) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.Allowed(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter check failed, allowing attempt")
		return true
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter update failed")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
