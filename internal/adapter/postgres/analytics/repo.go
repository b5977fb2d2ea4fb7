// Package analytics implements read-only dashboard aggregates over PostgreSQL.
package analytics

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const (
	topRecipientRows = 10
	trailingMonths   = 6
)

// Repo runs aggregate queries for dashboards.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analytics repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// liveLegs selects legs whose tracker is also live.
func liveLegs(cols ...string) sq.SelectBuilder {
	return postgres.Builder().Select(cols...).
		From("tracker_recipients tr").
		Join("trackers t ON t.id = tr.tracker_id").
		Where("tr.deleted_at IS NULL").
		Where("t.deleted_at IS NULL")
}

func durationsQuery() sq.SelectBuilder {
	return liveLegs(
		"AVG(EXTRACT(EPOCH FROM (tr.seen_at - tr.created_at)) / 3600) FILTER (WHERE tr.seen_at IS NOT NULL) AS avg_pending_hours",
		"AVG(EXTRACT(EPOCH FROM (tr.completed_at - tr.seen_at)) / 3600) FILTER (WHERE tr.completed_at IS NOT NULL AND tr.seen_at IS NOT NULL) AS avg_processing_hours",
		"AVG(EXTRACT(EPOCH FROM (tr.completed_at - tr.created_at)) / 3600) FILTER (WHERE tr.completed_at IS NOT NULL) AS avg_total_completion_hours",
	)
}

func statusQuery() sq.SelectBuilder {
	return liveLegs("tr.status AS status", "count(*) AS count").
		GroupBy("tr.status").
		OrderBy("count DESC", "status ASC")
}

// SystemStats computes the dashboard aggregate. Empty tables yield zero
// counts, empty slices and nil averages.
func (r *Repo) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	b := postgres.Builder()
	s := domain.SystemStats{
		UsersByRole:     []domain.RoleCount{},
		StatusCounts:    []domain.StatusCount{},
		TrackersByMonth: []domain.MonthCount{},
		TopRecipients:   []domain.RecipientCount{},
		ActionCounts:    []domain.ActionCount{},
	}

	totals := []struct {
		table string
		dst   *int
	}{
		{"users", &s.TotalUsers},
		{"trackers", &s.TotalTrackers},
		{"recipients", &s.TotalRecipients},
	}
	for _, tt := range totals {
		n, err := postgres.Count(ctx, q, b.Select("1").From(tt.table).Where("deleted_at IS NULL"))
		if err != nil {
			return s, postgres.MapError(err, "analytics", "total_"+tt.table)
		}
		*tt.dst = n
	}

	queries := []struct {
		name string
		dst  any
		b    sq.SelectBuilder
	}{
		{"users_by_role", &s.UsersByRole, b.Select("role", "count(*) AS count").
			From("users").
			Where("deleted_at IS NULL").
			GroupBy("role").
			OrderBy("count DESC", "role ASC")},
		{"status_counts", &s.StatusCounts, statusQuery()},
		{"trackers_by_month", &s.TrackersByMonth, b.Select(
			"to_char(date_trunc('month', created_at), 'YYYY-MM') AS month", "count(*) AS count").
			From("trackers").
			Where("deleted_at IS NULL").
			Where(sq.Expr("created_at >= date_trunc('month', now()) - make_interval(months => ?)", trailingMonths-1)).
			GroupBy("month").
			OrderBy("month ASC")},
		{"top_recipients", &s.TopRecipients, liveLegs(
			"r.recipient_code AS recipient_id", "r.recipient_name", "r.initial", "count(*) AS count").
			Join("recipients r ON r.recipient_code = tr.recipient_id").
			GroupBy("r.recipient_code", "r.recipient_name", "r.initial").
			OrderBy("count DESC", "r.recipient_name ASC").
			Limit(topRecipientRows)},
		{"action_counts", &s.ActionCounts, liveLegs("tr.action AS action", "count(*) AS count").
			Where("tr.action IS NOT NULL").
			Where("btrim(tr.action) <> ''").
			GroupBy("tr.action").
			OrderBy("count DESC", "action ASC")},
	}
	for _, qq := range queries {
		if err := postgres.Select(ctx, q, qq.dst, qq.b); err != nil {
			return s, postgres.MapError(err, "analytics", qq.name)
		}
	}

	if err := postgres.Get(ctx, q, &s.Durations, durationsQuery()); err != nil {
		return s, postgres.MapError(err, "analytics", "durations")
	}

	return s, nil
}

// RecipientSummary computes status counts and averages for one office.
func (r *Repo) RecipientSummary(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	s := domain.RecipientSummary{RecipientID: recipientID, StatusCounts: []domain.StatusCount{}}
	scope := sq.Eq{"tr.recipient_id": recipientID}

	if err := postgres.Select(ctx, q, &s.StatusCounts, statusQuery().Where(scope)); err != nil {
		return s, postgres.MapError(err, "analytics", recipientID)
	}
	for _, sc := range s.StatusCounts {
		s.Total += sc.Count
	}

	if err := postgres.Get(ctx, q, &s.Durations, durationsQuery().Where(scope)); err != nil {
		return s, postgres.MapError(err, "analytics", recipientID)
	}
	return s, nil
}
