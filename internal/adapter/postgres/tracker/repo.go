// Package tracker implements the Tracker repository using PostgreSQL.
package tracker

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

const table = "trackers"

// Columns lists every tracker column in scan order. Other repositories join
// trackers with a "t." prefix and reuse Row for scanning.
var Columns = []string{
	"id", "serial_number", "from_name", "document_title", "date_received",
	"attachment", "attachment_mime_type", "is_confidential", "is_archived",
	"lce_action", "lce_keyed_in_action", "lce_action_date", "lce_remarks",
	"lce_reply", "lce_keyed_in_reply", "lce_reply_date",
	"reply_slip_attachment", "reply_slip_mime_type",
	"created_by", "created_at", "updated_at",
}

var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"dateReceived":  "date_received",
	"serialNumber":  "serial_number",
	"documentTitle": "document_title",
}

// Repo provides tracker persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tracker repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Row is the scan target for a trackers row.
type Row struct {
	ID                 uuid.UUID  `db:"id"`
	SerialNumber       string     `db:"serial_number"`
	FromName           string     `db:"from_name"`
	DocumentTitle      string     `db:"document_title"`
	DateReceived       time.Time  `db:"date_received"`
	Attachment         *string    `db:"attachment"`
	AttachmentMimeType *string    `db:"attachment_mime_type"`
	IsConfidential     bool       `db:"is_confidential"`
	IsArchived         bool       `db:"is_archived"`
	LCEAction          string     `db:"lce_action"`
	LCEKeyedInAction   *string    `db:"lce_keyed_in_action"`
	LCEActionDate      *time.Time `db:"lce_action_date"`
	LCERemarks         *string    `db:"lce_remarks"`
	LCEReply           *string    `db:"lce_reply"`
	LCEKeyedInReply    *string    `db:"lce_keyed_in_reply"`
	LCEReplyDate       *time.Time `db:"lce_reply_date"`
	ReplySlip          *string    `db:"reply_slip_attachment"`
	ReplySlipMimeType  *string    `db:"reply_slip_mime_type"`
	CreatedBy          *uuid.UUID `db:"created_by"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// ToDomain converts the row into a domain.Tracker.
func (r Row) ToDomain() domain.Tracker {
	t := domain.Tracker{
		ID:                  r.ID,
		SerialNumber:        r.SerialNumber,
		FromName:            r.FromName,
		DocumentTitle:       r.DocumentTitle,
		DateReceived:        r.DateReceived,
		Attachment:          r.Attachment,
		AttachmentMimeType:  r.AttachmentMimeType,
		IsConfidential:      r.IsConfidential,
		IsArchived:          r.IsArchived,
		LCEAction:           domain.LCEAction(r.LCEAction),
		LCEKeyedInAction:    r.LCEKeyedInAction,
		LCEActionDate:       r.LCEActionDate,
		LCERemarks:          r.LCERemarks,
		LCEKeyedInReply:     r.LCEKeyedInReply,
		LCEReplyDate:        r.LCEReplyDate,
		ReplySlipAttachment: r.ReplySlip,
		ReplySlipMimeType:   r.ReplySlipMimeType,
		CreatedBy:           r.CreatedBy,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.LCEReply != nil {
		reply := domain.LCEAction(*r.LCEReply)
		t.LCEReply = &reply
	}
	return t
}

// PrefixedColumns returns Columns qualified with alias, e.g. "t.id".
func PrefixedColumns(alias string) []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = alias + "." + c
	}
	return out
}

func live() sq.SelectBuilder {
	return postgres.Builder().Select(Columns...).From(table).Where("deleted_at IS NULL")
}

func returning() string {
	return "RETURNING " + strings.Join(Columns, ", ")
}

func lceReply(a *domain.LCEAction) *string {
	if a == nil {
		return nil
	}
	s := string(*a)
	return &s
}

// GetByID returns a live tracker by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tracker, error) {
	var out Row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, live().Where(sq.Eq{"id": id})); err != nil {
		return nil, postgres.MapError(err, "tracker", id)
	}
	t := out.ToDomain()
	return &t, nil
}

// GetBySerial returns a live tracker by serial number.
func (r *Repo) GetBySerial(ctx context.Context, serial string) (*domain.Tracker, error) {
	var out Row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, live().Where(sq.Eq{"serial_number": serial})); err != nil {
		return nil, postgres.MapError(err, "tracker", serial)
	}
	t := out.ToDomain()
	return &t, nil
}

// Create inserts a tracker and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t *domain.Tracker) (*domain.Tracker, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.LCEAction == "" {
		t.LCEAction = domain.LCEActionPending
	}

	b := postgres.Builder().Insert(table).
		Columns(
			"id", "serial_number", "from_name", "document_title", "date_received",
			"attachment", "attachment_mime_type", "is_confidential", "is_archived",
			"lce_action", "lce_keyed_in_action", "lce_action_date", "lce_remarks",
			"lce_reply", "lce_keyed_in_reply", "lce_reply_date",
			"reply_slip_attachment", "reply_slip_mime_type", "created_by",
		).
		Values(
			t.ID, t.SerialNumber, t.FromName, t.DocumentTitle, t.DateReceived,
			t.Attachment, t.AttachmentMimeType, t.IsConfidential, t.IsArchived,
			string(t.LCEAction), t.LCEKeyedInAction, t.LCEActionDate, t.LCERemarks,
			lceReply(t.LCEReply), t.LCEKeyedInReply, t.LCEReplyDate,
			t.ReplySlipAttachment, t.ReplySlipMimeType, t.CreatedBy,
		).
		Suffix(returning())

	var out Row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "tracker", t.SerialNumber)
	}
	created := out.ToDomain()
	return &created, nil
}

// Update writes every mutable column of a live tracker.
func (r *Repo) Update(ctx context.Context, t *domain.Tracker) (*domain.Tracker, error) {
	b := postgres.Builder().Update(table).
		SetMap(map[string]any{
			"serial_number":         t.SerialNumber,
			"from_name":             t.FromName,
			"document_title":        t.DocumentTitle,
			"date_received":         t.DateReceived,
			"attachment":            t.Attachment,
			"attachment_mime_type":  t.AttachmentMimeType,
			"is_confidential":       t.IsConfidential,
			"is_archived":           t.IsArchived,
			"lce_action":            string(t.LCEAction),
			"lce_keyed_in_action":   t.LCEKeyedInAction,
			"lce_action_date":       t.LCEActionDate,
			"lce_remarks":           t.LCERemarks,
			"lce_reply":             lceReply(t.LCEReply),
			"lce_keyed_in_reply":    t.LCEKeyedInReply,
			"lce_reply_date":        t.LCEReplyDate,
			"reply_slip_attachment": t.ReplySlipAttachment,
			"reply_slip_mime_type":  t.ReplySlipMimeType,
		}).
		Where(sq.Eq{"id": t.ID}).
		Where("deleted_at IS NULL").
		Suffix(returning())

	var out Row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "tracker", t.ID)
	}
	updated := out.ToDomain()
	return &updated, nil
}

// SetArchived sets the archived flag and returns the updated tracker.
func (r *Repo) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Tracker, error) {
	b := postgres.Builder().Update(table).
		Set("is_archived", archived).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix(returning())

	var out Row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, b); err != nil {
		return nil, postgres.MapError(err, "tracker", id)
	}
	t := out.ToDomain()
	return &t, nil
}

// Delete soft-deletes a tracker and its legs.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := postgres.Exec(ctx, q, postgres.Builder().Update(table).
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL"))
	if err != nil {
		return postgres.MapError(err, "tracker", id)
	}
	if n == 0 {
		return postgres.MapError(pgx.ErrNoRows, "tracker", id)
	}

	_, err = postgres.Exec(ctx, q, postgres.Builder().Update("tracker_recipients").
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"tracker_id": id}).
		Where("deleted_at IS NULL"))
	if err != nil {
		return postgres.MapError(err, "tracker_recipient", id)
	}
	return nil
}

// List returns a page of live trackers.
func (r *Repo) List(ctx context.Context, f domain.TrackerFilter) (domain.Page[domain.Tracker], error) {
	p := domain.NewPagination(f.Page, f.Limit)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := live()
	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		b = b.Where(postgres.ILike(strings.TrimSpace(*f.Search), "serial_number", "document_title", "from_name"))
	}
	if f.IsArchived != nil {
		b = b.Where(sq.Eq{"is_archived": *f.IsArchived})
	}
	if f.IsConfidential != nil {
		b = b.Where(sq.Eq{"is_confidential": *f.IsConfidential})
	}
	if f.LCEAction != nil {
		b = b.Where(sq.Eq{"lce_action": string(*f.LCEAction)})
	}
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"date_received": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"date_received": *f.DateTo})
	}

	total, err := postgres.Count(ctx, q, b)
	if err != nil {
		return domain.Page[domain.Tracker]{}, postgres.MapError(err, "tracker", "list")
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	order := domain.ParseSortOrder(string(f.SortOrder), domain.SortDesc)
	b = b.OrderBy(col+" "+string(order), "id "+string(order)).
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))

	var rows []Row
	if err := postgres.Select(ctx, q, &rows, b); err != nil {
		return domain.Page[domain.Tracker]{}, postgres.MapError(err, "tracker", "list")
	}

	items := make([]domain.Tracker, len(rows))
	for i, rw := range rows {
		items[i] = rw.ToDomain()
	}
	return domain.Page[domain.Tracker]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}
