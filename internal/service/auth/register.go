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

// Register creates a viewer account for self-registration.
// Returns ErrForbidden when registration is disabled and ErrAlreadyExists if
// the username or email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !s.cfg.RegistrationEnabled() {
		return nil, fmt.Errorf("auth.Register: registration disabled: %w", domain.ErrForbidden)
	}

	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Fullname = strings.TrimSpace(input.Fullname)

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	// Step 3: Create user. Username and email uniqueness are enforced by DB constraints.
	user, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Fullname:     input.Fullname,
		PasswordHash: string(hash),
		Role:         domain.RoleViewer,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	// Step 4: Issue token
	result, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue token: %w", err)
	}

	s.activity.LogAuth(ctx, "REGISTER", user.ID.String(), "user registered: "+user.Username, false)
	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
