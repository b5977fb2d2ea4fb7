// Package recipient implements the Recipient repository using PostgreSQL.
package recipient

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

const table = "recipients"

var columns = []string{
	"recipient_code", "recipient_no", "recipient_name", "initial", "created_at", "updated_at",
}

// Repo provides recipient persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new recipient repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	Code      uuid.UUID `db:"recipient_code"`
	No        int       `db:"recipient_no"`
	Name      string    `db:"recipient_name"`
	Initial   *string   `db:"initial"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Recipient {
	return domain.Recipient{
		Code:      r.Code,
		No:        r.No,
		Name:      r.Name,
		Initial:   r.Initial,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.Recipient {
	out := make([]domain.Recipient, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

func live() sq.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table).Where("deleted_at IS NULL")
}

func applyFilter(b sq.SelectBuilder, f domain.RecipientFilter) sq.SelectBuilder {
	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		b = b.Where(postgres.ILike(strings.TrimSpace(*f.Search), "recipient_name", "initial"))
	}
	if f.MaxNo > 0 {
		b = b.Where(sq.LtOrEq{"recipient_no": f.MaxNo})
	}
	return b
}

// GetByCode returns a live recipient by primary key.
func (r *Repo) GetByCode(ctx context.Context, code uuid.UUID) (*domain.Recipient, error) {
	var out row
	err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, live().Where(sq.Eq{"recipient_code": code}))
	if err != nil {
		return nil, postgres.MapError(err, "recipient", code)
	}
	rec := out.toDomain()
	return &rec, nil
}

// ExistingCodes returns the subset of codes that belong to live recipients.
func (r *Repo) ExistingCodes(ctx context.Context, codes []uuid.UUID) ([]uuid.UUID, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	b := postgres.Builder().Select("recipient_code").From(table).
		Where("deleted_at IS NULL").
		Where(sq.Eq{"recipient_code": codes})

	var out []uuid.UUID
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "recipient", "existing")
	}
	return out, nil
}

// List returns a page of live recipients ordered by name.
func (r *Repo) List(ctx context.Context, f domain.RecipientFilter) (domain.Page[domain.Recipient], error) {
	p := domain.NewPagination(f.Page, f.Limit)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := applyFilter(live(), f)
	total, err := postgres.Count(ctx, q, b)
	if err != nil {
		return domain.Page[domain.Recipient]{}, postgres.MapError(err, "recipient", "list")
	}

	var rows []row
	b = b.OrderBy("recipient_name ASC").Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := postgres.Select(ctx, q, &rows, b); err != nil {
		return domain.Page[domain.Recipient]{}, postgres.MapError(err, "recipient", "list")
	}

	return domain.Page[domain.Recipient]{Items: toDomainList(rows), Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// ListAll returns every live recipient matching f, ignoring pagination.
func (r *Repo) ListAll(ctx context.Context, f domain.RecipientFilter) ([]domain.Recipient, error) {
	var rows []row
	b := applyFilter(live(), f).OrderBy("recipient_name ASC")
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, b); err != nil {
		return nil, postgres.MapError(err, "recipient", "list_all")
	}
	return toDomainList(rows), nil
}

// Create inserts a recipient. The ordinal is assigned by the database.
func (r *Repo) Create(ctx context.Context, rec *domain.Recipient) (*domain.Recipient, error) {
	if rec.Code == uuid.Nil {
		rec.Code = uuid.New()
	}
	b := postgres.Builder().Insert(table).
		Columns("recipient_code", "recipient_name", "initial").
		Values(rec.Code, rec.Name, rec.Initial).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "recipient", rec.Name)
	}
	created := out.toDomain()
	return &created, nil
}

// Update renames a live recipient.
func (r *Repo) Update(ctx context.Context, rec *domain.Recipient) (*domain.Recipient, error) {
	b := postgres.Builder().Update(table).
		Set("recipient_name", rec.Name).
		Set("initial", rec.Initial).
		Where(sq.Eq{"recipient_code": rec.Code}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "recipient", rec.Code)
	}
	updated := out.toDomain()
	return &updated, nil
}

// Delete soft-deletes a recipient.
func (r *Repo) Delete(ctx context.Context, code uuid.UUID) error {
	b := postgres.Builder().Update(table).
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"recipient_code": code}).
		Where("deleted_at IS NULL")

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return postgres.MapError(err, "recipient", code)
	}
	if n == 0 {
		return postgres.MapError(pgx.ErrNoRows, "recipient", code)
	}
	return nil
}
