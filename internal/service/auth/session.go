package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// Authenticate resolves a bearer token to a live user. Every failure,
// including a deleted user, is ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, _, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Authenticate: %w", err)
	}
	return user, nil
}

// Me returns the user of the current request.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.Me: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return err
	}

	// Step 2: Verify the current password
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.NewValidationError("currentPassword", "incorrect password")
	}

	// Step 3: Store the new hash
	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	s.activity.LogAuth(ctx, "CHANGE_PASSWORD", userID.String(), "password changed", false)
	s.log.InfoContext(ctx, "password changed", slog.String("user_id", userID.String()))

	return nil
}
