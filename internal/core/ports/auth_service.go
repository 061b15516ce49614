package ports

import (
	"context"

	"github.com/edumarket/course-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Allowed(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
