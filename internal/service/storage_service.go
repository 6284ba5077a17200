// File: internal/service/storage_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"
)

// ErrUsageUnsupported is returned by Usage when the provider cannot report bucket size
var ErrUsageUnsupported = errors.New("usage reporting is not supported by this provider")

// StorageService wraps the opened bucket. Every call is logged here so the UI layers stay free of logging.
// Failed object operations are reported to the user by the page, so they are only traced at debug level
type StorageService struct {
	bucket storage.Bucket
	logger *slog.Logger
}

var _ storage.Bucket = (*StorageService)(nil)

func NewStorageService(bucket storage.Bucket, logger *slog.Logger) *StorageService {
	return &StorageService{
		bucket: bucket,
		logger: logger.With("service", "StorageService", "bucket", bucket.Name()),
	}
}

func (s *StorageService) ProviderName() common.Provider {
	return s.bucket.ProviderName()
}

func (s *StorageService) Name() string {
	return s.bucket.Name()
}

// --- Object Operations ---

func (s *StorageService) Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) error {
	s.logger.Debug("Starting Upload operation", "key", key, "size", len(data), "content_type", opts.ContentType)

	if err := s.bucket.Upload(ctx, key, data, opts); err != nil {
		s.logger.Debug("Failed to upload object", "key", key, "error", err)
		return err
	}
	return nil
}

func (s *StorageService) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.Entry, error) {
	s.logger.Debug("Starting List operation", "prefix", prefix, "limit", opts.Limit, "sort", opts.SortBy.Field, "order", opts.SortBy.Order)

	entries, err := s.bucket.List(ctx, prefix, opts)
	if err != nil {
		s.logger.Debug("Failed to list objects", "prefix", prefix, "error", err)
		return nil, err
	}

	s.logger.Debug("Successfully listed objects", "count", len(entries))
	return entries, nil
}

func (s *StorageService) PublicURL(key string) string {
	return s.bucket.PublicURL(key)
}

func (s *StorageService) Remove(ctx context.Context, keys []string) error {
	s.logger.Debug("Starting Remove operation", "keys", keys)

	if err := s.bucket.Remove(ctx, keys); err != nil {
		s.logger.Debug("Failed to remove objects", "keys", keys, "error", err)
		return err
	}
	return nil
}

// --- Bucket Operations ---

// Usage reports the bytes stored in the bucket when the provider supports it
func (s *StorageService) Usage(ctx context.Context) (int64, error) {
	reporter, ok := s.bucket.(storage.UsageReporter)
	if !ok {
		return 0, fmt.Errorf("%s: %w", s.bucket.ProviderName(), ErrUsageUnsupported)
	}

	s.logger.Debug("Starting Usage operation")
	bytes, err := reporter.Usage(ctx)
	if err != nil {
		s.logger.Debug("Failed to fetch bucket usage", "error", err)
		return 0, err
	}
	return bytes, nil
}

func (s *StorageService) Close() error {
	if err := s.bucket.Close(); err != nil {
		s.logger.Error("Failed to close bucket client", "error", err)
		return err
	}
	return nil
}
