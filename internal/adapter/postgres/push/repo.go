// Package push implements the push subscription repository using PostgreSQL.
package push

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const table = "push_subscriptions"

var columns = []string{"id", "user_id", "endpoint", "p256dh", "auth", "created_at", "updated_at"}

// Repo provides push subscription persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new push subscription repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Endpoint  string    `db:"endpoint"`
	P256dh    string    `db:"p256dh"`
	Auth      string    `db:"auth"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.PushSubscription {
	return domain.PushSubscription{
		ID:        r.ID,
		UserID:    r.UserID,
		Endpoint:  r.Endpoint,
		P256dh:    r.P256dh,
		Auth:      r.Auth,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Upsert stores a subscription keyed by endpoint. An endpoint that moves to
// another user is reassigned.
func (r *Repo) Upsert(ctx context.Context, s domain.PushSubscription) (domain.PushSubscription, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	b := postgres.Builder().Insert(table).
		Columns("id", "user_id", "endpoint", "p256dh", "auth").
		Values(s.ID, s.UserID, s.Endpoint, s.P256dh, s.Auth).
		Suffix(`ON CONFLICT (endpoint) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			p256dh  = EXCLUDED.p256dh,
			auth    = EXCLUDED.auth
		RETURNING ` + strings.Join(columns, ", "))

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return domain.PushSubscription{}, postgres.MapError(err, "push_subscription", s.Endpoint)
	}
	return out.toDomain(), nil
}

// ListByUsers returns all subscriptions of the given users.
func (r *Repo) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	b := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"user_id": userIDs}).
		OrderBy("created_at")

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, b); err != nil {
		return nil, postgres.MapError(err, "push_subscription", "by_users")
	}
	out := make([]domain.PushSubscription, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// DeleteByEndpoint removes a subscription. userID restricts the delete to one
// owner; pass uuid.Nil to delete regardless of owner.
func (r *Repo) DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) (bool, error) {
	b := postgres.Builder().Delete(table).Where(sq.Eq{"endpoint": endpoint})
	if userID != uuid.Nil {
		b = b.Where(sq.Eq{"user_id": userID})
	}
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return false, postgres.MapError(err, "push_subscription", endpoint)
	}
	return n > 0, nil
}
