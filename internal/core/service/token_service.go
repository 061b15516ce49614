package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edumarket/course-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the signed payload: {id, role} plus the registered claims.
type tokenClaims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 identity tokens. It holds no mutable
// state and is safe for concurrent use.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for subjectID that expires ttl after issuance.
func (s *JWTService) Issue(subjectID string, role domain.Role) (string, error) {
	if subjectID == "" || !role.Valid() {
		return "", fmt.Errorf("issue token: invalid subject or role")
	}

	now := s.now()
	claims := tokenClaims{
		UserID: subjectID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// identity. Every failure is reported as domain.ErrInvalidToken; the
// underlying cause is wrapped for logging only. The subject is not looked up.
func (s *JWTService) Verify(token string) (domain.Identity, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, errors.New("missing id or unknown role"))
	}

	return domain.Identity{ID: claims.UserID, Role: claims.Role}, nil
}
