// Package storage keeps the uploaded resume and job description texts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid storage key")

// StoredDocument locates a document after upload.
type StoredDocument struct {
	Key string
	URL string
}

type DocumentStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (*StoredDocument, error)
	Delete(ctx context.Context, key string) error
}

// New picks the driver named by cfg.Driver.
func New(ctx context.Context, cfg *config.StorageConfig, baseURL string, log *logger.Logger) (DocumentStore, error) {
	switch cfg.Driver {
	case config.StorageGCS:
		return NewGCSStore(ctx, cfg, log)
	case config.StorageLocal, "":
		return NewLocalStore(cfg.LocalDir, baseURL)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
	}
}

var (
	docExtension = regexp.MustCompile(`(?i)\.(pdf|docx?|txt)$`)
	unsafeChars  = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// TextFileName swaps a document extension for .txt, since only extracted
// text is stored.
func TextFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	base = docExtension.ReplaceAllString(base, "")
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_.")
	if base == "" {
		base = "document"
	}
	return base + ".txt"
}

// DocumentKey builds "<kind>/<userID>/<random>-<name>.txt".
func DocumentKey(kind string, userID uuid.UUID, fileName string) string {
	return path.Join(kind, userID.String(), uuid.NewString()[:8]+"-"+TextFileName(fileName))
}

// OwnerOf returns the user id segment of a key built by DocumentKey.
func OwnerOf(key string) (uuid.UUID, error) {
	if err := validateKey(key); err != nil {
		return uuid.Nil, err
	}
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return id, nil
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
