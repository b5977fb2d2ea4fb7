// Package recipient manages the offices that trackers are routed to.
package recipient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type recipientRepo interface {
	GetByCode(ctx context.Context, code uuid.UUID) (*domain.Recipient, error)
	List(ctx context.Context, f domain.RecipientFilter) (domain.Page[domain.Recipient], error)
	ListAll(ctx context.Context, f domain.RecipientFilter) ([]domain.Recipient, error)
	Create(ctx context.Context, rec *domain.Recipient) (*domain.Recipient, error)
	Update(ctx context.Context, rec *domain.Recipient) (*domain.Recipient, error)
	Delete(ctx context.Context, code uuid.UUID) error
}

type activityLogger interface {
	LogRecipient(ctx context.Context, action, entityID, description string, details map[string]any)
}

// Service implements recipient operations.
type Service struct {
	log      *slog.Logger
	repo     recipientRepo
	activity activityLogger
	cfg      config.RecipientsConfig
}

// NewService creates a new recipient service instance.
func NewService(logger *slog.Logger, repo recipientRepo, activity activityLogger, cfg config.RecipientsConfig) *Service {
	return &Service{
		log:      logger.With("service", "recipient"),
		repo:     repo,
		activity: activity,
		cfg:      cfg,
	}
}

// Input holds the editable recipient fields.
type Input struct {
	Name    string
	Initial *string
}

// Validate validates the recipient input.
func (i Input) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "recipientName", Message: "required"})
	} else if utf8.RuneCountInString(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "recipientName", Message: "too long"})
	}
	if i.Initial != nil && utf8.RuneCountInString(*i.Initial) > 20 {
		errs = append(errs, domain.FieldError{Field: "initial", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i *Input) normalize() {
	i.Name = strings.TrimSpace(i.Name)
	if i.Initial != nil {
		v := strings.TrimSpace(*i.Initial)
		if v == "" {
			i.Initial = nil
		} else {
			i.Initial = &v
		}
	}
}

// List returns a page of listable recipients.
func (s *Service) List(ctx context.Context, f domain.RecipientFilter) (domain.Page[domain.Recipient], error) {
	f.MaxNo = s.cfg.MaxListingNo
	page, err := s.repo.List(ctx, f)
	if err != nil {
		return domain.Page[domain.Recipient]{}, fmt.Errorf("recipient.List: %w", err)
	}
	return page, nil
}

// ListAll returns every listable recipient ordered by name.
func (s *Service) ListAll(ctx context.Context, search *string) ([]domain.Recipient, error) {
	items, err := s.repo.ListAll(ctx, domain.RecipientFilter{Search: search, MaxNo: s.cfg.MaxListingNo})
	if err != nil {
		return nil, fmt.Errorf("recipient.ListAll: %w", err)
	}
	return items, nil
}

// Get returns one recipient.
func (s *Service) Get(ctx context.Context, code uuid.UUID) (*domain.Recipient, error) {
	rec, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("recipient.Get: %w", err)
	}
	return rec, nil
}

// Create adds a recipient. A duplicate name is ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Recipient, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.Create(ctx, &domain.Recipient{Name: input.Name, Initial: input.Initial})
	if err != nil {
		return nil, fmt.Errorf("recipient.Create: %w", err)
	}

	s.activity.LogRecipient(ctx, "CREATE", rec.Code.String(), "created recipient "+rec.Name, nil)
	s.log.InfoContext(ctx, "recipient created", slog.String("recipient_code", rec.Code.String()))
	return rec, nil
}

// Update renames a recipient or changes its initial.
func (s *Service) Update(ctx context.Context, code uuid.UUID, input Input) (*domain.Recipient, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.Update(ctx, &domain.Recipient{Code: code, Name: input.Name, Initial: input.Initial})
	if err != nil {
		return nil, fmt.Errorf("recipient.Update: %w", err)
	}

	s.activity.LogRecipient(ctx, "UPDATE", code.String(), "updated recipient "+rec.Name, nil)
	return rec, nil
}

// Delete soft-deletes a recipient.
func (s *Service) Delete(ctx context.Context, code uuid.UUID) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("recipient.Delete: %w", err)
	}

	s.activity.LogRecipient(ctx, "DELETE", code.String(), "deleted recipient", nil)
	s.log.InfoContext(ctx, "recipient deleted", slog.String("recipient_code", code.String()))
	return nil
}
