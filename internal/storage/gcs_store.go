package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

func NewGCSStore(ctx context.Context, cfg *config.StorageConfig, log *logger.Logger) (*GCSStore, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET")
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	log.Info("object storage initialized", "driver", "gcs", "bucket", cfg.GCSBucket)
	return &GCSStore{client: client, bucket: cfg.GCSBucket, log: log.With("service", "GCSStore")}, nil
}

func (s *GCSStore) Put(ctx context.Context, key, contentType string, data []byte) (*StoredDocument, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gcs close %s: %w", key, err)
	}
	return &StoredDocument{Key: key, URL: s.publicURL(key)}, nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, (&url.URL{Path: key}).EscapedPath())
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
