package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// Upload is a file received with a create or update request.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// AttachmentKind selects which stored file of a tracker to read.
type AttachmentKind string

const (
	KindAttachment AttachmentKind = "attachment"
	KindReplySlip  AttachmentKind = "reply-slip"
)

var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// storedFile is an upload written to storage.
type storedFile struct {
	key         string
	contentType string
}

// store sniffs the content type of u and writes it under the tracker's prefix.
// field names the form field in validation errors.
func (s *Service) store(ctx context.Context, trackerID uuid.UUID, kind AttachmentKind, field string, u *Upload) (*storedFile, error) {
	if u.Size > s.cfg.MaxUploadBytes {
		return nil, domain.NewValidationError(field, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxUploadBytes))
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(u.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return nil, domain.NewValidationError(field, "file is empty")
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, domain.NewValidationError(field, "only PDF, JPEG and PNG files are allowed")
	}

	key := fmt.Sprintf("trackers/%s/%s-%s%s", trackerID, kind, uuid.NewString(), ext)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), u.Reader), s.cfg.MaxUploadBytes)
	if err := s.files.Put(ctx, key, body, u.Size, contentType); err != nil {
		return nil, fmt.Errorf("store %s: %w", kind, err)
	}

	return &storedFile{key: key, contentType: contentType}, nil
}

// discard removes stored files after a failed or superseded write.
func (s *Service) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.files.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "delete stored file", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}

// OpenAttachment streams a stored file of a tracker. The caller closes the
// reader.
func (s *Service) OpenAttachment(ctx context.Context, id uuid.UUID, kind AttachmentKind) (io.ReadCloser, string, error) {
	t, err := s.visible(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("tracker.OpenAttachment: %w", err)
	}

	var key, contentType *string
	switch kind {
	case KindAttachment:
		key, contentType = t.Attachment, t.AttachmentMimeType
	case KindReplySlip:
		key, contentType = t.ReplySlipAttachment, t.ReplySlipMimeType
	default:
		return nil, "", domain.NewValidationError("kind", "unknown attachment kind")
	}
	if key == nil || *key == "" {
		return nil, "", fmt.Errorf("tracker.OpenAttachment: no %s: %w", kind, domain.ErrNotFound)
	}

	rc, err := s.files.Open(ctx, *key)
	if err != nil {
		return nil, "", fmt.Errorf("tracker.OpenAttachment: %w", err)
	}

	ct := "application/octet-stream"
	if contentType != nil && *contentType != "" {
		ct = *contentType
	}
	return rc, ct, nil
}
