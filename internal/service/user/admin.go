package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// List returns a filtered page of users (admin only).
func (s *Service) List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.Page[domain.User]{}, domain.ErrForbidden
	}
	if f.Role != nil && !f.Role.IsValid() {
		return domain.Page[domain.User]{}, domain.NewValidationError("role", "invalid value")
	}

	page, err := s.users.List(ctx, f)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("user.List: %w", err)
	}
	return page, nil
}

// Get returns a single user (admin only).
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}
	return u, nil
}

// Create adds a user with any role. Only a superadmin may create a superadmin.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Fullname = strings.TrimSpace(input.Fullname)

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Role == domain.RoleSuperAdmin && !isSuperAdmin(ctx) {
		return nil, fmt.Errorf("user.Create: only a superadmin may create a superadmin: %w", domain.ErrForbidden)
	}

	// Step 2: Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash password: %w", err)
	}

	// Step 3: Insert
	u, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Fullname:     input.Fullname,
		PasswordHash: string(hash),
		Role:         input.Role,
		RecipientID:  input.RecipientID,
	})
	if err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.activity.LogUser(ctx, "CREATE", u.ID.String(), "created user "+u.Username,
		map[string]any{"role": u.Role.String()})
	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", u.ID.String()),
		slog.String("role", u.Role.String()),
	)

	return u, nil
}

// Update modifies a user. Only a superadmin may modify a superadmin or
// promote someone to superadmin.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var hash string
	if input.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("user.Update hash password: %w", err)
		}
		hash = string(h)
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		promoting := input.Role != nil && *input.Role == domain.RoleSuperAdmin
		if (current.Role == domain.RoleSuperAdmin || promoting) && !isSuperAdmin(ctx) {
			return fmt.Errorf("only a superadmin may modify a superadmin: %w", domain.ErrForbidden)
		}

		input.apply(current)
		if current.Role == domain.RoleRecipient && current.RecipientID == nil {
			return domain.NewValidationError("recipientId", "required for recipient role")
		}

		updated, err = s.users.Update(txCtx, current)
		if err != nil {
			return err
		}

		if hash != "" {
			if err := s.users.UpdatePassword(txCtx, id, hash); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.activity.LogUser(ctx, "UPDATE", id.String(), "updated user "+updated.Username,
		map[string]any{"passwordChanged": hash != ""})

	return updated, nil
}

// Delete soft-deletes a user. Administrators cannot delete themselves.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if callerID == id {
		return domain.NewValidationError("id", "cannot delete yourself")
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}
	if target.Role == domain.RoleSuperAdmin && !isSuperAdmin(ctx) {
		return fmt.Errorf("user.Delete: only a superadmin may delete a superadmin: %w", domain.ErrForbidden)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}

	s.activity.LogUser(ctx, "DELETE", id.String(), "deleted user "+target.Username, nil)
	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))

	return nil
}

func isSuperAdmin(ctx context.Context) bool {
	return ctxutil.UserRoleFromCtx(ctx) == domain.RoleSuperAdmin.String()
}
