// Package routing implements persistence for tracker routing legs
// (the tracker_recipients table) using PostgreSQL.
package routing

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/tracker"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const table = "tracker_recipients"

var columns = []string{
	"id", "tracker_id", "recipient_id", "status", "is_seen", "is_read",
	"seen_at", "read_at", "acknowledged_at", "completed_at",
	"action", "remarks", "due_date", "updated_by", "created_at", "updated_at",
}

var inboxSortColumns = map[string]string{
	"createdAt":    "tr.created_at",
	"updatedAt":    "tr.updated_at",
	"dateReceived": "t.date_received",
	"serialNumber": "t.serial_number",
	"status":       "tr.status",
}

// upsertConflict revives a soft-deleted pair with a fresh pending state and
// leaves a live pair untouched. SET expressions see the pre-update row.
const upsertConflict = `ON CONFLICT ON CONSTRAINT ux_tracker_recipients_pair DO UPDATE SET
	deleted_at      = NULL,
	status          = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.status ELSE 'pending' END,
	is_seen         = tracker_recipients.is_seen AND tracker_recipients.deleted_at IS NULL,
	is_read         = tracker_recipients.is_read AND tracker_recipients.deleted_at IS NULL,
	seen_at         = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.seen_at END,
	read_at         = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.read_at END,
	acknowledged_at = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.acknowledged_at END,
	completed_at    = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.completed_at END,
	action          = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.action END,
	remarks         = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.remarks END,
	due_date        = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.due_date END,
	updated_at      = CASE WHEN tracker_recipients.deleted_at IS NULL THEN tracker_recipients.updated_at ELSE now() END`

// Repo provides routing leg persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new routing repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type legRow struct {
	ID             uuid.UUID  `db:"id"`
	TrackerID      uuid.UUID  `db:"tracker_id"`
	RecipientID    uuid.UUID  `db:"recipient_id"`
	Status         string     `db:"status"`
	IsSeen         bool       `db:"is_seen"`
	IsRead         bool       `db:"is_read"`
	SeenAt         *time.Time `db:"seen_at"`
	ReadAt         *time.Time `db:"read_at"`
	AcknowledgedAt *time.Time `db:"acknowledged_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	Action         *string    `db:"action"`
	Remarks        *string    `db:"remarks"`
	DueDate        *time.Time `db:"due_date"`
	UpdatedBy      *uuid.UUID `db:"updated_by"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r legRow) toDomain() domain.TrackerRecipient {
	return domain.TrackerRecipient{
		ID:             r.ID,
		TrackerID:      r.TrackerID,
		RecipientID:    r.RecipientID,
		Status:         domain.RoutingStatus(r.Status),
		IsSeen:         r.IsSeen,
		IsRead:         r.IsRead,
		SeenAt:         r.SeenAt,
		ReadAt:         r.ReadAt,
		AcknowledgedAt: r.AcknowledgedAt,
		CompletedAt:    r.CompletedAt,
		Action:         r.Action,
		Remarks:        r.Remarks,
		DueDate:        r.DueDate,
		UpdatedBy:      r.UpdatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type namedLegRow struct {
	legRow
	RecipientName    string  `db:"recipient_name"`
	RecipientInitial *string `db:"recipient_initial"`
}

type inboxRow struct {
	legRow
	Tracker tracker.Row `db:"tracker"`
}

func (r inboxRow) toDomain() domain.InboxItem {
	return domain.InboxItem{TrackerRecipient: r.legRow.toDomain(), Tracker: r.Tracker.ToDomain()}
}

func prefixed(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func live() sq.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table).Where("deleted_at IS NULL")
}

func toDomainLegs(rows []legRow) []domain.TrackerRecipient {
	out := make([]domain.TrackerRecipient, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Assign upserts one leg per recipient. New and revived legs are pending;
// legs that are already live keep their state. The result is in input order.
func (r *Repo) Assign(ctx context.Context, trackerID uuid.UUID, recipientIDs []uuid.UUID, by *uuid.UUID) ([]domain.TrackerRecipient, error) {
	recipientIDs = dedupe(recipientIDs)
	if len(recipientIDs) == 0 {
		return nil, nil
	}

	b := postgres.Builder().Insert(table).Columns("id", "tracker_id", "recipient_id", "updated_by")
	for _, rid := range recipientIDs {
		b = b.Values(uuid.New(), trackerID, rid, by)
	}
	b = b.Suffix(upsertConflict + " " + returning())

	var rows []legRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, b); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", trackerID)
	}

	byRecipient := make(map[uuid.UUID]domain.TrackerRecipient, len(rows))
	for _, rw := range rows {
		byRecipient[rw.RecipientID] = rw.toDomain()
	}
	out := make([]domain.TrackerRecipient, 0, len(recipientIDs))
	for _, rid := range recipientIDs {
		if leg, ok := byRecipient[rid]; ok {
			out = append(out, leg)
		}
	}
	return out, nil
}

// GetByID returns a live leg by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TrackerRecipient, error) {
	return r.getOne(ctx, live().Where(sq.Eq{"id": id}), id)
}

// GetByIDForUpdate is GetByID with a row lock. It must run inside a transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.TrackerRecipient, error) {
	return r.getOne(ctx, live().Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"), id)
}

// GetByPair returns the live leg of a tracker at a recipient.
func (r *Repo) GetByPair(ctx context.Context, trackerID, recipientID uuid.UUID) (*domain.TrackerRecipient, error) {
	return r.getOne(ctx, live().Where(sq.Eq{"tracker_id": trackerID, "recipient_id": recipientID}), trackerID)
}

// GetByPairForUpdate is GetByPair with a row lock. It must run inside a transaction.
func (r *Repo) GetByPairForUpdate(ctx context.Context, trackerID, recipientID uuid.UUID) (*domain.TrackerRecipient, error) {
	return r.getOne(ctx,
		live().Where(sq.Eq{"tracker_id": trackerID, "recipient_id": recipientID}).Suffix("FOR UPDATE"),
		trackerID)
}

func (r *Repo) getOne(ctx context.Context, b sq.SelectBuilder, id any) (*domain.TrackerRecipient, error) {
	var out legRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", id)
	}
	leg := out.toDomain()
	return &leg, nil
}

// ListByTrackerForUpdate locks and returns every live leg of a tracker.
func (r *Repo) ListByTrackerForUpdate(ctx context.Context, trackerID uuid.UUID) ([]domain.TrackerRecipient, error) {
	var rows []legRow
	b := live().Where(sq.Eq{"tracker_id": trackerID}).OrderBy("created_at").Suffix("FOR UPDATE")
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, b); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", trackerID)
	}
	return toDomainLegs(rows), nil
}

// Update persists the mutable state of a leg.
func (r *Repo) Update(ctx context.Context, leg *domain.TrackerRecipient) (*domain.TrackerRecipient, error) {
	b := postgres.Builder().Update(table).
		SetMap(map[string]any{
			"status":          string(leg.Status),
			"is_seen":         leg.IsSeen,
			"is_read":         leg.IsRead,
			"seen_at":         leg.SeenAt,
			"read_at":         leg.ReadAt,
			"acknowledged_at": leg.AcknowledgedAt,
			"completed_at":    leg.CompletedAt,
			"action":          leg.Action,
			"remarks":         leg.Remarks,
			"due_date":        leg.DueDate,
			"updated_by":      leg.UpdatedBy,
			"updated_at":      leg.UpdatedAt,
		}).
		Where(sq.Eq{"id": leg.ID}).
		Where("deleted_at IS NULL").
		Suffix(returning())

	return r.getOneUpdate(ctx, b, leg.ID)
}

func (r *Repo) getOneUpdate(ctx context.Context, b sq.UpdateBuilder, id uuid.UUID) (*domain.TrackerRecipient, error) {
	var out legRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", id)
	}
	leg := out.toDomain()
	return &leg, nil
}

// Remove soft-deletes the leg of a tracker at a recipient.
func (r *Repo) Remove(ctx context.Context, trackerID, recipientID uuid.UUID) error {
	b := postgres.Builder().Update(table).
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"tracker_id": trackerID, "recipient_id": recipientID}).
		Where("deleted_at IS NULL")

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return postgres.MapError(err, "tracker_recipient", trackerID)
	}
	if n == 0 {
		return postgres.MapError(pgx.ErrNoRows, "tracker_recipient", trackerID)
	}
	return nil
}

// ListByTracker returns the live legs of a tracker with recipient names,
// ordered by recipient name.
func (r *Repo) ListByTracker(ctx context.Context, trackerID uuid.UUID) ([]domain.RoutingLeg, error) {
	cols := append(prefixed("tr"), "r.recipient_name", "r.initial AS recipient_initial")
	b := postgres.Builder().Select(cols...).
		From(table + " tr").
		Join("recipients r ON r.recipient_code = tr.recipient_id").
		Where("tr.deleted_at IS NULL").
		Where(sq.Eq{"tr.tracker_id": trackerID}).
		OrderBy("r.recipient_name ASC")

	var rows []namedLegRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, b); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", trackerID)
	}

	out := make([]domain.RoutingLeg, len(rows))
	for i, rw := range rows {
		out[i] = domain.RoutingLeg{
			TrackerRecipient: rw.legRow.toDomain(),
			RecipientName:    rw.RecipientName,
			RecipientInitial: rw.RecipientInitial,
		}
	}
	return out, nil
}

func inboxSelect(f domain.InboxFilter) sq.SelectBuilder {
	cols := prefixed("tr")
	for _, c := range tracker.Columns {
		cols = append(cols, `t.`+c+` AS "tracker.`+c+`"`)
	}

	b := postgres.Builder().Select(cols...).
		From(table + " tr").
		Join("trackers t ON t.id = tr.tracker_id").
		Where("tr.deleted_at IS NULL").
		Where("t.deleted_at IS NULL").
		Where(sq.Eq{"tr.recipient_id": f.RecipientID})

	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		b = b.Where(postgres.ILike(strings.TrimSpace(*f.Search), "t.serial_number", "t.document_title", "t.from_name"))
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"tr.status": string(*f.Status)})
	}
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"t.date_received": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"t.date_received": *f.DateTo})
	}
	return b
}

func inboxOrder(b sq.SelectBuilder, f domain.InboxFilter) sq.SelectBuilder {
	col, ok := inboxSortColumns[f.SortBy]
	if !ok {
		col = "tr.created_at"
	}
	order := domain.ParseSortOrder(string(f.SortOrder), domain.SortDesc)
	return b.OrderBy(col+" "+string(order), "tr.id "+string(order))
}

func toInboxItems(rows []inboxRow) []domain.InboxItem {
	out := make([]domain.InboxItem, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out
}

// Inbox returns a page of legs addressed to f.RecipientID, joined with their trackers.
func (r *Repo) Inbox(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error) {
	p := domain.NewPagination(f.Page, f.Limit)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := inboxSelect(f)
	total, err := postgres.Count(ctx, q, b)
	if err != nil {
		return domain.Page[domain.InboxItem]{}, postgres.MapError(err, "tracker_recipient", f.RecipientID)
	}

	var rows []inboxRow
	b = inboxOrder(b, f).Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := postgres.Select(ctx, q, &rows, b); err != nil {
		return domain.Page[domain.InboxItem]{}, postgres.MapError(err, "tracker_recipient", f.RecipientID)
	}

	return domain.Page[domain.InboxItem]{Items: toInboxItems(rows), Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// InboxAll is Inbox without pagination.
func (r *Repo) InboxAll(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error) {
	var rows []inboxRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, inboxOrder(inboxSelect(f), f)); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", f.RecipientID)
	}
	return toInboxItems(rows), nil
}

// InboxItem returns one leg of a recipient's inbox with its tracker.
func (r *Repo) InboxItem(ctx context.Context, recipientID, trackerID uuid.UUID) (*domain.InboxItem, error) {
	b := inboxSelect(domain.InboxFilter{RecipientID: recipientID}).Where(sq.Eq{"tr.tracker_id": trackerID})

	var out inboxRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "tracker_recipient", trackerID)
	}
	item := out.toDomain()
	return &item, nil
}

// dedupe keeps the first occurrence of each ID. A single upsert statement may
// not touch the same row twice.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
