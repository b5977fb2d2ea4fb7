package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// Login authenticates a user with username + password.
// Returns ErrUnauthorized if the username is not found or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Username = strings.TrimSpace(input.Username)

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Find user by username
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.activity.LogAuth(ctx, "LOGIN", "", "login failed: unknown username "+input.Username, true)
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	// Step 3: Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.activity.LogAuth(ctx, "LOGIN", user.ID.String(), "login failed: wrong password", true)
		return nil, domain.ErrUnauthorized
	}

	// Step 4: Issue token
	result, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.activity.LogAuth(ctx, "LOGIN", user.ID.String(), "user logged in", false)
	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
