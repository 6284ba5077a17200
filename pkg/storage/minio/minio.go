// File: pkg/storage/minio/minio.go
package minio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pixdrop/internal/config"
	"pixdrop/internal/provider/registry"
	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func init() {
	registry.RegisterProvider("minio", registry.ProviderRegistration{
		ConfigCheck:  isConfigured,
		Initializer:  initialize,
		RequiredKeys: []string{"minio.endpoint", "minio.access_key", "minio.secret_key"},
	})
}

func isConfigured(cfg *config.Config) bool {
	return cfg.MinIO != nil && cfg.MinIO.Endpoint != "" && cfg.MinIO.AccessKey != "" && cfg.MinIO.SecretKey != ""
}

func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Bucket, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("MinIO configuration missing or incomplete")
	}
	return NewMinIOStorage(cfg.Bucket, *cfg.MinIO, cfg.PublicBaseURL, logger)
}

// MinIOStorage talks to MinIO or any other S3-compatible server through minio-go
type MinIOStorage struct {
	client     *miniogo.Client
	bucket     string
	publicBase string
	logger     *slog.Logger
}

var _ storage.Bucket = (*MinIOStorage)(nil)

func NewMinIOStorage(bucket string, minioCfg config.MinIOConfig, publicBase string, logger *slog.Logger) (*MinIOStorage, error) {
	client, err := miniogo.New(minioCfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(minioCfg.AccessKey, minioCfg.SecretKey, ""),
		Secure: minioCfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	if publicBase == "" {
		scheme := "http"
		if minioCfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, minioCfg.Endpoint, bucket)
	}

	return &MinIOStorage{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		logger:     logger,
	}, nil
}

func (s *MinIOStorage) ProviderName() common.Provider {
	return common.MinIO
}

func (s *MinIOStorage) Name() string {
	return s.bucket
}

// Upload refuses to replace an existing key unless opts.Overwrite is set.
// The existence check and the put are two requests, so two racing writers can still both succeed
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) error {
	s.logger.Debug("Starting MinIO PutObject operation", "bucket", s.bucket, "key", key, "size", len(data))

	if !opts.Overwrite {
		_, err := s.client.StatObject(ctx, s.bucket, key, miniogo.StatObjectOptions{})
		if err == nil {
			return fmt.Errorf("put object %q: %w", key, storage.ErrObjectExists)
		}
		if miniogo.ToErrorResponse(err).Code != "NoSuchKey" {
			return fmt.Errorf("stat object %q: %w", key, err)
		}
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl(),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *MinIOStorage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.Entry, error) {
	s.logger.Debug("Starting MinIO ListObjects operation", "bucket", s.bucket, "prefix", prefix)

	var entries []storage.Entry
	for obj := range s.client.ListObjects(ctx, s.bucket, miniogo.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		// Common prefixes come back as keys ending in the delimiter
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		entries = append(entries, storage.Entry{
			Name:      strings.TrimPrefix(obj.Key, prefix),
			CreatedAt: obj.LastModified,
			Metadata: storage.EntryMetadata{
				Size:        obj.Size,
				ContentType: obj.ContentType,
			},
		})
	}

	return storage.SortEntries(entries, opts), nil
}

// PublicURL assumes the bucket carries an anonymous-read policy
func (s *MinIOStorage) PublicURL(key string) string {
	return storage.JoinURL(s.publicBase, key)
}

func (s *MinIOStorage) Remove(ctx context.Context, keys []string) error {
	s.logger.Debug("Starting MinIO RemoveObjects operation", "bucket", s.bucket, "keys", keys)

	objectsCh := make(chan miniogo.ObjectInfo, len(keys))
	for _, k := range keys {
		objectsCh <- miniogo.ObjectInfo{Key: k}
	}
	close(objectsCh)

	// The error channel must be drained or minio-go's sender goroutine blocks
	var firstErr error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, miniogo.RemoveObjectsOptions{}) {
		if rErr.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove object %q: %w", rErr.ObjectName, rErr.Err)
		}
	}
	return firstErr
}

func (s *MinIOStorage) Close() error {
	return nil
}
