package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/tracker"
)

// multipartMemory is how much of a multipart body is buffered before
// spilling to temp files.
const multipartMemory = 8 << 20

type trackerService interface {
	List(ctx context.Context, f domain.TrackerFilter) (domain.Page[domain.Tracker], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TrackerDetail, error)
	Create(ctx context.Context, input tracker.CreateInput) (*domain.TrackerDetail, error)
	Update(ctx context.Context, id uuid.UUID, input tracker.UpdateInput) (*domain.Tracker, error)
	UpdateLCE(ctx context.Context, id uuid.UUID, u domain.LCEUpdate) (*domain.Tracker, error)
	ToggleArchive(ctx context.Context, id uuid.UUID) (*domain.Tracker, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignRecipients(ctx context.Context, id uuid.UUID, recipientIDs []uuid.UUID) ([]domain.RoutingLeg, error)
	RemoveRecipient(ctx context.Context, id, recipientID uuid.UUID) error
	OpenAttachment(ctx context.Context, id uuid.UUID, kind tracker.AttachmentKind) (io.ReadCloser, string, error)
}

// TrackerHandler serves document tracker endpoints.
type TrackerHandler struct {
	svc     trackerService
	maxBody int64
	log     *slog.Logger
}

// NewTrackerHandler creates a TrackerHandler. maxUpload bounds each file;
// the request body may carry two files plus form fields.
func NewTrackerHandler(svc trackerService, maxUpload int64, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{
		svc:     svc,
		maxBody: 2*maxUpload + multipartMemory,
		log:     logger.With("handler", "tracker"),
	}
}

type lceRequest struct {
	LCEAction        *string `json:"lceAction"`
	LCEKeyedInAction *string `json:"lceKeyedInAction"`
	LCEActionDate    *string `json:"lceActionDate"`
	LCERemarks       *string `json:"lceRemarks"`
	LCEReply         *string `json:"lceReply"`
	LCEKeyedInReply  *string `json:"lceKeyedInReply"`
	LCEReplyDate     *string `json:"lceReplyDate"`
}

func (l lceRequest) toUpdate() (domain.LCEUpdate, error) {
	var (
		u    domain.LCEUpdate
		errs []domain.FieldError
	)

	if l.LCEAction != nil {
		a := domain.LCEAction(*l.LCEAction)
		u.Action = &a
	}
	if l.LCEReply != nil {
		a := domain.LCEAction(*l.LCEReply)
		u.Reply = &a
	}
	u.KeyedInAction = l.LCEKeyedInAction
	u.KeyedInReply = l.LCEKeyedInReply
	u.Remarks = l.LCERemarks

	var err error
	if u.ActionDate, err = optParseDate(l.LCEActionDate); err != nil {
		errs = append(errs, domain.FieldError{Field: "lceActionDate", Message: "invalid date"})
	}
	if u.ReplyDate, err = optParseDate(l.LCEReplyDate); err != nil {
		errs = append(errs, domain.FieldError{Field: "lceReplyDate", Message: "invalid date"})
	}

	if len(errs) > 0 {
		return u, domain.NewValidationErrors(errs)
	}
	return u, nil
}

type trackerRequest struct {
	SerialNumber   *string     `json:"serialNumber"`
	FromName       *string     `json:"fromName"`
	DocumentTitle  *string     `json:"documentTitle"`
	DateReceived   *string     `json:"dateReceived"`
	IsConfidential *bool       `json:"isConfidential"`
	RecipientIDs   []uuid.UUID `json:"recipientIds"`
	lceRequest
}

type recipientsRequest struct {
	RecipientIDs []uuid.UUID `json:"recipientIds"`
}

func optParseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// trackerForm is a decoded create or update body. Files are only present for
// multipart requests.
type trackerForm struct {
	req        trackerRequest
	attachment *tracker.Upload
	replySlip  *tracker.Upload
	closers    []io.Closer
}

func (f *trackerForm) close() {
	for _, c := range f.closers {
		c.Close() //nolint:errcheck
	}
}

// decodeTrackerForm reads a multipart form or a JSON body.
func (h *TrackerHandler) decodeTrackerForm(w http.ResponseWriter, r *http.Request) (*trackerForm, error) {
	form := &trackerForm{}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := decodeJSON(w, r, &form.req); err != nil {
			return nil, err
		}
		return form, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, domain.NewValidationError("attachment", "request body too large")
		}
		return nil, domain.NewValidationError("body", "invalid multipart form")
	}

	v := r.MultipartForm.Value
	field := func(key string) *string {
		if vals, ok := v[key]; ok && len(vals) > 0 {
			s := vals[0]
			return &s
		}
		return nil
	}

	form.req.SerialNumber = field("serialNumber")
	form.req.FromName = field("fromName")
	form.req.DocumentTitle = field("documentTitle")
	form.req.DateReceived = field("dateReceived")
	form.req.LCEAction = field("lceAction")
	form.req.LCEKeyedInAction = field("lceKeyedInAction")
	form.req.LCEActionDate = field("lceActionDate")
	form.req.LCERemarks = field("lceRemarks")
	form.req.LCEReply = field("lceReply")
	form.req.LCEKeyedInReply = field("lceKeyedInReply")
	form.req.LCEReplyDate = field("lceReplyDate")

	if s := field("isConfidential"); s != nil {
		b, err := strconv.ParseBool(*s)
		if err != nil {
			return nil, domain.NewValidationError("isConfidential", "must be true or false")
		}
		form.req.IsConfidential = &b
	}

	ids, err := parseRecipientIDs(append(v["recipientIds"], v["recipientIds[]"]...))
	if err != nil {
		return nil, err
	}
	form.req.RecipientIDs = ids

	if form.attachment, err = form.file(r, "attachment"); err != nil {
		form.close()
		return nil, err
	}
	if form.replySlip, err = form.file(r, "replySlipAttachment"); err != nil {
		form.close()
		return nil, err
	}
	return form, nil
}

func (f *trackerForm) file(r *http.Request, name string) (*tracker.Upload, error) {
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError(name, "invalid file")
	}
	f.closers = append(f.closers, file)
	return uploadFrom(file, header), nil
}

func uploadFrom(file multipart.File, header *multipart.FileHeader) *tracker.Upload {
	return &tracker.Upload{Filename: header.Filename, Size: header.Size, Reader: file}
}

// parseRecipientIDs accepts repeated fields, comma separated lists and JSON
// arrays.
func parseRecipientIDs(values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "[") {
			var parsed []uuid.UUID
			if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
				return nil, domain.NewValidationError("recipientIds", "invalid recipient id")
			}
			ids = append(ids, parsed...)
			continue
		}
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, domain.NewValidationError("recipientIds", "invalid recipient id")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// List handles GET /trackers.
func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.TrackerFilter{
		Search:         q.str("search"),
		IsArchived:     q.bool("isArchived"),
		IsConfidential: q.bool("isConfidential"),
		DateFrom:       q.date("dateFrom"),
		DateTo:         q.date("dateTo"),
		SortBy:         q.get("sort"),
		SortOrder:      domain.ParseSortOrder(q.get("order"), domain.SortDesc),
		Pagination:     q.pagination(),
	}
	if a := q.str("lceAction"); a != nil {
		action := domain.LCEAction(*a)
		f.LCEAction = &action
	}
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toTrackerResponse))
}

// Get handles GET /trackers/{id}.
func (h *TrackerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrackerDetailResponse(*d))
}

// Create handles POST /trackers.
func (h *TrackerHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeTrackerForm(w, r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	defer form.close()

	req := form.req
	lce, err := req.toUpdate()
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	received, err := optParseDate(req.DateReceived)
	if err != nil {
		respondError(h.log, w, r, domain.NewValidationError("dateReceived", "invalid date"))
		return
	}

	input := tracker.CreateInput{
		SerialNumber:  req.SerialNumber,
		FromName:      deref(req.FromName),
		DocumentTitle: deref(req.DocumentTitle),
		RecipientIDs:  req.RecipientIDs,
		LCE:           lce,
		Attachment:    form.attachment,
		ReplySlip:     form.replySlip,
	}
	if received != nil {
		input.DateReceived = *received
	}
	if req.IsConfidential != nil {
		input.IsConfidential = *req.IsConfidential
	}

	d, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTrackerDetailResponse(*d))
}

// Update handles PUT /trackers/{id}.
func (h *TrackerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	form, err := h.decodeTrackerForm(w, r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	defer form.close()

	req := form.req
	received, err := optParseDate(req.DateReceived)
	if err != nil {
		respondError(h.log, w, r, domain.NewValidationError("dateReceived", "invalid date"))
		return
	}

	t, err := h.svc.Update(r.Context(), id, tracker.UpdateInput{
		SerialNumber:   req.SerialNumber,
		FromName:       req.FromName,
		DocumentTitle:  req.DocumentTitle,
		DateReceived:   received,
		IsConfidential: req.IsConfidential,
		Attachment:     form.attachment,
		ReplySlip:      form.replySlip,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrackerResponse(*t))
}

// UpdateLCE handles PATCH /trackers/{id}/lce.
func (h *TrackerHandler) UpdateLCE(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	var req lceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	u, err := req.toUpdate()
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	t, err := h.svc.UpdateLCE(r.Context(), id, u)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrackerResponse(*t))
}

// Archive handles PATCH /trackers/{id}/archive.
func (h *TrackerHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	t, err := h.svc.ToggleArchive(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrackerResponse(*t))
}

// Delete handles DELETE /trackers/{id}.
func (h *TrackerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignRecipients handles POST /trackers/{id}/recipients.
func (h *TrackerHandler) AssignRecipients(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	var req recipientsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	legs, err := h.svc.AssignRecipients(r.Context(), id, req.RecipientIDs)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(legs, toRoutingLegResponse))
}

// RemoveRecipient handles DELETE /trackers/{id}/recipients/{recipientId}.
func (h *TrackerHandler) RemoveRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	recipientID, err := pathID(r, "recipientId")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if err := h.svc.RemoveRecipient(r.Context(), id, recipientID); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Attachment handles GET /trackers/{id}/attachment.
func (h *TrackerHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, tracker.KindAttachment)
}

// ReplySlip handles GET /trackers/{id}/reply-slip.
func (h *TrackerHandler) ReplySlip(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, tracker.KindReplySlip)
}

func (h *TrackerHandler) stream(w http.ResponseWriter, r *http.Request, kind tracker.AttachmentKind) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	rc, contentType, err := h.svc.OpenAttachment(r.Context(), id, kind)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.log.WarnContext(r.Context(), "attachment stream interrupted",
			slog.String("tracker_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}
