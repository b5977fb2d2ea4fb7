package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/push"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

const maxJSONBody = 1 << 20

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string               `json:"error"`
	Details []fieldErrorResponse `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError maps a service error to its HTTP status. Unexpected errors
// are logged and hidden behind a generic 500.
func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: "validation failed"}
		for _, fe := range ve.Errors {
			resp.Details = append(resp.Details, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
		}
		if len(ve.Errors) == 1 {
			resp.Error = ve.Errors[0].Field + ": " + ve.Errors[0].Message
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		// Bare sentinels come from storage constraints; their text names tables and ids.
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, push.ErrDisabled):
		writeError(w, http.StatusServiceUnavailable, "push notifications are not configured")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid request body")
	}
	return nil
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "invalid id")
	}
	return id, nil
}

// query wraps URL query parsing and collects field errors.
type query struct {
	values map[string][]string
	errs   []domain.FieldError
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) get(key string) string {
	if v := q.values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func (q *query) str(key string) *string {
	v := q.get(key)
	if v == "" {
		return nil
	}
	return &v
}

func (q *query) int(key string, def int) int {
	v := q.get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "must be an integer"})
		return def
	}
	return n
}

func (q *query) bool(key string) *bool {
	v := q.get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "must be true or false"})
		return nil
	}
	return &b
}

func (q *query) uuid(key string) *uuid.UUID {
	v := q.get(key)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "invalid id"})
		return nil
	}
	return &id
}

func (q *query) date(key string) *time.Time {
	v := q.get(key)
	if v == "" {
		return nil
	}
	t, err := parseDate(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: key, Message: "invalid date"})
		return nil
	}
	return &t
}

func (q *query) pagination() domain.Pagination {
	return domain.NewPagination(q.int("page", 1), q.int("limit", domain.DefaultPageLimit))
}

func (q *query) err() error {
	if len(q.errs) > 0 {
		return domain.NewValidationErrors(q.errs)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
