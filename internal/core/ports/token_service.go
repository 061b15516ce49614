package ports

import "github.com/edumarket/course-api/internal/core/domain"

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(subjectID string, role domain.Role) (string, error)
	Verify(token string) (domain.Identity, error)
}
