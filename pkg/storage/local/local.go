// File: pkg/storage/local/local.go
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"pixdrop/internal/config"
	"pixdrop/internal/provider/registry"
	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"
)

func init() {
	registry.RegisterProvider("local", registry.ProviderRegistration{
		ConfigCheck:  isConfigured,
		Initializer:  initialize,
		RequiredKeys: []string{"local.root"},
	})
}

func isConfigured(cfg *config.Config) bool {
	return cfg.Local != nil && cfg.Local.Root != ""
}

func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Bucket, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("local configuration missing or incomplete")
	}
	return NewLocalStorage(cfg.Local.Root, cfg.Bucket, cfg.PublicBaseURL, logger)
}

// LocalStorage keeps a bucket as a directory under root.
// Like a freshly created managed bucket, a new directory starts out holding only the placeholder object
type LocalStorage struct {
	dir        string
	bucket     string
	publicBase string
	logger     *slog.Logger
}

var _ storage.Bucket = (*LocalStorage)(nil)

func NewLocalStorage(root, bucket, publicBase string, logger *slog.Logger) (*LocalStorage, error) {
	if !filepath.IsLocal(bucket) {
		return nil, fmt.Errorf("invalid bucket name %q", bucket)
	}

	dir, err := filepath.Abs(filepath.Join(root, bucket))
	if err != nil {
		return nil, fmt.Errorf("error resolving bucket directory: %w", err)
	}

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating bucket directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, storage.PlaceholderName), nil, 0644); err != nil {
			return nil, fmt.Errorf("error creating placeholder: %w", err)
		}
		logger.Info("Created local bucket", "dir", dir)
	} else if err != nil {
		return nil, fmt.Errorf("error checking bucket directory: %w", err)
	}

	if publicBase == "" {
		publicBase = (&url.URL{Scheme: "file", Path: filepath.ToSlash(dir)}).String()
	}

	return &LocalStorage{
		dir:        dir,
		bucket:     bucket,
		publicBase: publicBase,
		logger:     logger,
	}, nil
}

func (s *LocalStorage) ProviderName() common.Provider {
	return common.Local
}

func (s *LocalStorage) Name() string {
	return s.bucket
}

func (s *LocalStorage) Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	s.logger.Debug("Writing local object", "path", path, "size", len(data))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("failed to upload %s: %w", key, storage.ErrObjectExists)
		}
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// List reports modification time as the creation time; Go has no portable file birth time
func (s *LocalStorage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.Entry, error) {
	dir := s.dir
	if prefix != "" {
		p, err := s.pathFor(prefix)
		if err != nil {
			return nil, err
		}
		dir = p
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []storage.Entry{}, nil
		}
		return nil, fmt.Errorf("error listing objects: %w", err)
	}

	entries := make([]storage.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", de.Name(), err)
		}
		entries = append(entries, storage.Entry{
			Name:      de.Name(),
			CreatedAt: info.ModTime(),
			Metadata:  storage.EntryMetadata{Size: info.Size()},
		})
	}

	return storage.SortEntries(entries, opts), nil
}

func (s *LocalStorage) PublicURL(key string) string {
	return storage.JoinURL(s.publicBase, key)
}

func (s *LocalStorage) Remove(ctx context.Context, keys []string) error {
	for _, key := range keys {
		path, err := s.pathFor(key)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

func (s *LocalStorage) Close() error {
	return nil
}

// Keys may contain '/' but must stay inside the bucket directory
func (s *LocalStorage) pathFor(key string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}
