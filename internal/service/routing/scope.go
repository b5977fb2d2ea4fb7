package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// authorize rejects recipient-role callers addressing another office.
func authorize(ctx context.Context, recipientID uuid.UUID) error {
	caller := domain.User{Role: callerRole(ctx)}
	if rid, ok := ctxutil.RecipientIDFromCtx(ctx); ok {
		caller.RecipientID = &rid
	}
	if !caller.CanActForRecipient(recipientID) {
		return fmt.Errorf("recipient %s: %w", recipientID, domain.ErrForbidden)
	}
	return nil
}

// authorizeWrite additionally requires a role allowed to move routing legs.
func authorizeWrite(ctx context.Context, recipientID uuid.UUID) error {
	if !callerRole(ctx).CanUpdateRouting() {
		return fmt.Errorf("update routing: %w", domain.ErrForbidden)
	}
	return authorize(ctx, recipientID)
}

// requireEditor rejects callers that may not assign offices to trackers.
func requireEditor(ctx context.Context) error {
	if !callerRole(ctx).CanEditTrackers() {
		return fmt.Errorf("assign recipients: %w", domain.ErrForbidden)
	}
	return nil
}

func callerRole(ctx context.Context) domain.Role {
	return domain.Role(ctxutil.UserRoleFromCtx(ctx))
}

func callerID(ctx context.Context) *uuid.UUID {
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return &id
	}
	return nil
}

func isRecipientCaller(ctx context.Context) bool {
	return ctxutil.UserRoleFromCtx(ctx) == domain.RoleRecipient.String()
}

func hidesConfidential(ctx context.Context) bool {
	return ctxutil.UserRoleFromCtx(ctx) == domain.RoleViewer.String()
}
