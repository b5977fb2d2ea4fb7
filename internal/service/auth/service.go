package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// activityLogger records authentication events.
type activityLogger interface {
	LogAuth(ctx context.Context, action, entityID, description string, failed bool)
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	jwt      jwtManager
	activity activityLogger
	cfg      config.AuthConfig
	now      func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	jwt jwtManager,
	activity activityLogger,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		jwt:      jwt,
		activity: activity,
		cfg:      cfg,
		now:      time.Now,
	}
}

// issueToken signs an access token for user.
func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResult{
		AccessToken: token,
		ExpiresAt:   s.now().Add(s.cfg.TokenTTL),
		User:        user,
	}, nil
}
