// Package storage keeps tracker attachments on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// Store is implemented by every storage backend.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable and writable.
	Ping(ctx context.Context) error
}

// New returns the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local":
		return NewLocal(cfg.LocalDir)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// cleanKey rejects keys that are empty, absolute or escape the root.
func cleanKey(key string) (string, error) {
	k := path.Clean(strings.TrimSpace(key))
	if k == "." || k == "" || strings.HasPrefix(k, "/") || k == ".." || strings.HasPrefix(k, "../") {
		return "", fmt.Errorf("storage key %q: %w", key, domain.ErrValidation)
	}
	return k, nil
}
