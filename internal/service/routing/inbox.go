package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

var inboxSorts = map[string]bool{
	"": true, "createdAt": true, "updatedAt": true, "dateReceived": true, "serialNumber": true, "status": true,
}

func validateInbox(f domain.InboxFilter) error {
	var errs []domain.FieldError
	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if !inboxSorts[f.SortBy] {
		errs = append(errs, domain.FieldError{Field: "sort", Message: "invalid value"})
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		errs = append(errs, domain.FieldError{Field: "dateTo", Message: "must not be before dateFrom"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Inbox returns a page of the legs addressed to f.RecipientID.
func (s *Service) Inbox(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error) {
	if err := authorize(ctx, f.RecipientID); err != nil {
		return domain.Page[domain.InboxItem]{}, err
	}
	if err := validateInbox(f); err != nil {
		return domain.Page[domain.InboxItem]{}, err
	}
	f.Pagination = domain.NewPagination(f.Page, f.Limit)

	page, err := s.legs.Inbox(ctx, f)
	if err != nil {
		return domain.Page[domain.InboxItem]{}, fmt.Errorf("routing.Inbox: %w", err)
	}
	if hidesConfidential(ctx) {
		page.Items = dropConfidential(page.Items)
	}
	return page, nil
}

// InboxAll is Inbox without pagination.
func (s *Service) InboxAll(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error) {
	if err := authorize(ctx, f.RecipientID); err != nil {
		return nil, err
	}
	if err := validateInbox(f); err != nil {
		return nil, err
	}

	items, err := s.legs.InboxAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("routing.InboxAll: %w", err)
	}
	if hidesConfidential(ctx) {
		items = dropConfidential(items)
	}
	return items, nil
}

// OpenInboxItem returns one leg with its tracker. A recipient user opening a
// pending leg marks it seen.
func (s *Service) OpenInboxItem(ctx context.Context, recipientID, trackerID uuid.UUID) (*domain.InboxItem, error) {
	if err := authorize(ctx, recipientID); err != nil {
		return nil, err
	}

	item, err := s.legs.InboxItem(ctx, recipientID, trackerID)
	if err != nil {
		return nil, fmt.Errorf("routing.OpenInboxItem: %w", err)
	}
	if item.Tracker.IsConfidential && hidesConfidential(ctx) {
		return nil, fmt.Errorf("routing.OpenInboxItem: tracker %s: %w", trackerID, domain.ErrNotFound)
	}

	if isRecipientCaller(ctx) && item.Status == domain.StatusPending {
		leg, err := s.UpdateStatusByPair(ctx, trackerID, recipientID, domain.StatusUpdate{Status: domain.StatusSeen})
		if err != nil {
			return nil, fmt.Errorf("routing.OpenInboxItem: mark seen: %w", err)
		}
		item.TrackerRecipient = *leg
	}
	return item, nil
}

func dropConfidential(items []domain.InboxItem) []domain.InboxItem {
	out := items[:0]
	for _, it := range items {
		if !it.Tracker.IsConfidential {
			out = append(out, it)
		}
	}
	return out
}
