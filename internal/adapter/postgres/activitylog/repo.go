// Package activitylog implements the append-only activity log repository using PostgreSQL.
package activitylog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const (
	table       = "activity_logs"
	topUserRows = 10
)

var columns = []string{
	"id", "user_id", "action", "entity_type", "entity_id", "description",
	"details", "ip_address", "user_agent", "status", "created_at",
}

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	UserID      *uuid.UUID `db:"user_id"`
	Action      string     `db:"action"`
	EntityType  string     `db:"entity_type"`
	EntityID    *string    `db:"entity_id"`
	Description string     `db:"description"`
	Details     []byte     `db:"details"`
	IPAddress   *string    `db:"ip_address"`
	UserAgent   *string    `db:"user_agent"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r row) toDomain() (domain.ActivityLog, error) {
	log := domain.ActivityLog{
		ID:          r.ID,
		UserID:      r.UserID,
		Action:      r.Action,
		EntityType:  domain.EntityType(r.EntityType),
		EntityID:    r.EntityID,
		Description: r.Description,
		IPAddress:   r.IPAddress,
		UserAgent:   r.UserAgent,
		Status:      domain.ActivityStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}

	// details: JSONB -> map[string]any
	if len(r.Details) > 0 {
		details := make(map[string]any)
		if err := json.Unmarshal(r.Details, &details); err != nil {
			return domain.ActivityLog{}, fmt.Errorf("activity_log %s unmarshal details: %w", r.ID, err)
		}
		log.Details = details
	}
	return log, nil
}

func toDomainList(rows []row) ([]domain.ActivityLog, error) {
	out := make([]domain.ActivityLog, len(rows))
	for i, r := range rows {
		l, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// Create appends a record and returns it as stored.
func (r *Repo) Create(ctx context.Context, l domain.ActivityLog) (domain.ActivityLog, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = domain.ActivitySuccess
	}

	var details []byte
	if len(l.Details) > 0 {
		var err error
		details, err = json.Marshal(l.Details)
		if err != nil {
			return domain.ActivityLog{}, fmt.Errorf("activity_log marshal details: %w", err)
		}
	}

	b := postgres.Builder().Insert(table).
		Columns("id", "user_id", "action", "entity_type", "entity_id", "description",
			"details", "ip_address", "user_agent", "status").
		Values(l.ID, l.UserID, l.Action, string(l.EntityType), l.EntityID, l.Description,
			details, l.IPAddress, l.UserAgent, string(l.Status)).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return domain.ActivityLog{}, postgres.MapError(err, "activity_log", l.ID)
	}
	return out.toDomain()
}

// GetByID returns a single record.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.ActivityLog, error) {
	b := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id})

	var out row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return domain.ActivityLog{}, postgres.MapError(err, "activity_log", id)
	}
	return out.toDomain()
}

// List returns a page of records, newest first.
func (r *Repo) List(ctx context.Context, f domain.ActivityFilter) (domain.Page[domain.ActivityLog], error) {
	p := domain.NewPagination(f.Page, f.Limit)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder().Select(columns...).From(table)
	if f.UserID != nil {
		b = b.Where(sq.Eq{"user_id": *f.UserID})
	}
	if f.Action != nil {
		b = b.Where(sq.Eq{"action": *f.Action})
	}
	if f.EntityType != nil {
		b = b.Where(sq.Eq{"entity_type": string(*f.EntityType)})
	}
	if f.EntityID != nil {
		b = b.Where(sq.Eq{"entity_id": *f.EntityID})
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		b = b.Where(postgres.ILike(strings.TrimSpace(*f.Search), "description", "action"))
	}
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"created_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"created_at": *f.DateTo})
	}

	total, err := postgres.Count(ctx, q, b)
	if err != nil {
		return domain.Page[domain.ActivityLog]{}, postgres.MapError(err, "activity_log", "list")
	}

	var rows []row
	b = b.OrderBy("created_at DESC", "id DESC").Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := postgres.Select(ctx, q, &rows, b); err != nil {
		return domain.Page[domain.ActivityLog]{}, postgres.MapError(err, "activity_log", "list")
	}

	items, err := toDomainList(rows)
	if err != nil {
		return domain.Page[domain.ActivityLog]{}, err
	}
	return domain.Page[domain.ActivityLog]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// Summary aggregates records created at or after since.
func (r *Repo) Summary(ctx context.Context, since time.Time) (domain.ActivitySummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	s := domain.ActivitySummary{
		Since:        since,
		ByAction:     []domain.CountItem{},
		ByEntityType: []domain.CountItem{},
		ByStatus:     []domain.CountItem{},
		TopUsers:     []domain.ActiveUser{},
	}

	window := sq.GtOrEq{"created_at": since}

	total, err := postgres.Count(ctx, q, postgres.Builder().Select("id").From(table).Where(window))
	if err != nil {
		return s, postgres.MapError(err, "activity_log", "summary")
	}
	s.Total = total

	groups := []struct {
		column string
		dst    *[]domain.CountItem
	}{
		{"action", &s.ByAction},
		{"entity_type", &s.ByEntityType},
		{"status", &s.ByStatus},
	}
	for _, g := range groups {
		b := postgres.Builder().
			Select(g.column+" AS key", "count(*) AS count").
			From(table).
			Where(window).
			GroupBy(g.column).
			OrderBy("count DESC", "key ASC")
		if err := postgres.Select(ctx, q, g.dst, b); err != nil {
			return s, postgres.MapError(err, "activity_log", "summary_"+g.column)
		}
	}

	top := postgres.Builder().
		Select("a.user_id", "COALESCE(u.username, '') AS username", "count(*) AS count").
		From(table+" a").
		LeftJoin("users u ON u.id = a.user_id").
		Where(sq.GtOrEq{"a.created_at": since}).
		Where("a.user_id IS NOT NULL").
		GroupBy("a.user_id", "u.username").
		OrderBy("count DESC", "username ASC").
		Limit(topUserRows)
	if err := postgres.Select(ctx, q, &s.TopUsers, top); err != nil {
		return s, postgres.MapError(err, "activity_log", "summary_users")
	}

	return s, nil
}

// CountOlderThan returns how many records DeleteOlderThan would remove.
func (r *Repo) CountOlderThan(ctx context.Context, before time.Time) (int, error) {
	b := postgres.Builder().Select("id").From(table).Where(sq.Lt{"created_at": before})
	n, err := postgres.Count(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return 0, postgres.MapError(err, "activity_log", "count_old")
	}
	return n, nil
}

// DeleteOlderThan removes records created before the cut-off.
func (r *Repo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	b := postgres.Builder().Delete(table).Where(sq.Lt{"created_at": before})
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return 0, postgres.MapError(err, "activity_log", "cleanup")
	}
	return n, nil
}
