// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "username", "email", "fullname", "password_hash", "role",
	"recipient_id", "created_at", "updated_at",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	Fullname     string     `db:"fullname"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	RecipientID  *uuid.UUID `db:"recipient_id"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r row) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		Fullname:     r.Fullname,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		RecipientID:  r.RecipientID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func live() sq.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table).Where("deleted_at IS NULL")
}

// GetByID returns a live user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var out row
	err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, live().Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return out.toDomain(), nil
}

// GetByUsername returns a live user by username, case-insensitively.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var out row
	err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		live().Where("lower(username) = lower(?)", username))
	if err != nil {
		return nil, postgres.MapError(err, "user", username)
	}
	return out.toDomain(), nil
}

// Create inserts a new user and returns the persisted row.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	b := postgres.Builder().Insert(table).
		Columns("id", "username", "email", "fullname", "password_hash", "role", "recipient_id").
		Values(u.ID, u.Username, u.Email, u.Fullname, u.PasswordHash, string(u.Role), u.RecipientID).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "user", u.Username)
	}
	return out.toDomain(), nil
}

// Update writes profile, role and office link of an existing live user.
func (r *Repo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	b := postgres.Builder().Update(table).
		Set("username", u.Username).
		Set("email", u.Email).
		Set("fullname", u.Fullname).
		Set("role", string(u.Role)).
		Set("recipient_id", u.RecipientID).
		Where(sq.Eq{"id": u.ID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return out.toDomain(), nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	b := postgres.Builder().Update(table).
		Set("password_hash", hash).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL")

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if n == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// Delete soft-deletes a user.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	b := postgres.Builder().Update(table).
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL")

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if n == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// List returns a page of live users ordered by username.
func (r *Repo) List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error) {
	p := domain.NewPagination(f.Page, f.Limit)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := live()
	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		b = b.Where(postgres.ILike(strings.TrimSpace(*f.Search), "username", "email", "fullname"))
	}
	if f.Role != nil {
		b = b.Where(sq.Eq{"role": string(*f.Role)})
	}

	total, err := postgres.Count(ctx, q, b)
	if err != nil {
		return domain.Page[domain.User]{}, postgres.MapError(err, "user", "list")
	}

	var rows []row
	b = b.OrderBy("lower(username) ASC").Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := postgres.Select(ctx, q, &rows, b); err != nil {
		return domain.Page[domain.User]{}, postgres.MapError(err, "user", "list")
	}

	items := make([]domain.User, len(rows))
	for i, rw := range rows {
		items[i] = *rw.toDomain()
	}
	return domain.Page[domain.User]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// ListIDsByRecipient returns the IDs of live users linked to a recipient office.
func (r *Repo) ListIDsByRecipient(ctx context.Context, recipientIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(recipientIDs) == 0 {
		return nil, nil
	}

	b := postgres.Builder().Select("id").From(table).
		Where("deleted_at IS NULL").
		Where(sq.Eq{"recipient_id": recipientIDs})

	var ids []uuid.UUID
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &ids, b); err != nil {
		return nil, postgres.MapError(err, "user", "by_recipient")
	}
	return ids, nil
}
