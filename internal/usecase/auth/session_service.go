package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
	"github.com/johnquangdev/projectflow/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	"github.com/johnquangdev/projectflow/pkg/jwt"
)

// provisionTTL bounds how often a user row is refreshed from token claims
const provisionTTL = 5 * time.Minute

// TokenValidator parses bearer tokens issued by the external auth provider
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// SessionService resolves bearer tokens to local users. Accounts are owned by
// the external provider; the users table is provisioned from verified claims.
type SessionService struct {
	userRepo repositories.UserRepository
	tokens   TokenValidator
	seen     *cache.MemoryStore
	logger   *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	userRepo repositories.UserRepository,
	tokens TokenValidator,
	seen *cache.MemoryStore,
	logger *zap.Logger,
) *SessionService {
	if seen == nil {
		seen = cache.NewMemoryStore()
	}
	return &SessionService{
		userRepo: userRepo,
		tokens:   tokens,
		seen:     seen,
		logger:   logger,
	}
}

// ValidateSession validates a bearer token and returns the caller
func (s *SessionService) ValidateSession(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, usecaseErrors.ErrUnauthorized
	}

	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, usecaseErrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil {
		return nil, usecaseErrors.ErrInvalidToken
	}

	user := entities.NewUserFromClaims(claims.UserID, claims.Email, claims.Name, claims.Role)
	if err := s.provision(ctx, user, claims.Fingerprint()); err != nil {
		return nil, err
	}
	return user, nil
}

// provision upserts the user at most once per provisionTTL per identity
func (s *SessionService) provision(ctx context.Context, user *entities.User, fingerprint string) error {
	key := "user:" + user.ID.String()
	if v, ok := s.seen.Get(key); ok && v == fingerprint {
		return nil
	}

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidToken, err)
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to provision user",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
		return fmt.Errorf("failed to provision user: %w", err)
	}

	s.seen.Set(key, fingerprint, provisionTTL)
	return nil
}
