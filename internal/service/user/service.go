package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error)
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// activityLogger records user administration events.
type activityLogger interface {
	LogUser(ctx context.Context, action, entityID, description string, details map[string]any)
}

// Service implements user administration.
type Service struct {
	log      *slog.Logger
	users    userRepo
	tx       txManager
	activity activityLogger
	cfg      config.AuthConfig
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tx txManager,
	activity activityLogger,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		tx:       tx,
		activity: activity,
		cfg:      cfg,
	}
}
