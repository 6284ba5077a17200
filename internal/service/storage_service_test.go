package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBucket struct {
	entries   []storage.Entry
	err       error
	closed    bool
	uploadKey string
}

func (b *stubBucket) ProviderName() common.Provider { return common.MinIO }
func (b *stubBucket) Name() string                  { return "images" }
func (b *stubBucket) PublicURL(key string) string   { return "http://localhost:9000/images/" + key }

func (b *stubBucket) Upload(_ context.Context, key string, _ []byte, _ storage.UploadOptions) error {
	b.uploadKey = key
	return b.err
}

func (b *stubBucket) List(context.Context, string, storage.ListOptions) ([]storage.Entry, error) {
	return b.entries, b.err
}

func (b *stubBucket) Remove(context.Context, []string) error {
	return b.err
}

func (b *stubBucket) Close() error {
	b.closed = true
	return nil
}

type reportingBucket struct {
	stubBucket
	usage int64
}

func (b *reportingBucket) Usage(context.Context) (int64, error) {
	return b.usage, nil
}

func newServiceWithLog(bucket storage.Bucket) (*StorageService, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewStorageService(bucket, logger), &buf
}

func TestStorageService_Delegates(t *testing.T) {
	bucket := &stubBucket{entries: []storage.Entry{{Name: "a.png"}}}
	svc, logs := newServiceWithLog(bucket)
	ctx := context.Background()

	require.NoError(t, svc.Upload(ctx, "a.png", []byte("x"), storage.UploadOptions{}))
	assert.Equal(t, "a.png", bucket.uploadKey)

	entries, err := svc.List(ctx, "", storage.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.NoError(t, svc.Remove(ctx, []string{"a.png"}))
	assert.Equal(t, "http://localhost:9000/images/a.png", svc.PublicURL("a.png"))
	assert.Equal(t, common.MinIO, svc.ProviderName())

	require.NoError(t, svc.Close())
	assert.True(t, bucket.closed)

	assert.Contains(t, logs.String(), "Starting Upload operation")
	assert.Contains(t, logs.String(), "bucket=images")
}

func TestStorageService_FailuresOnlyTracedAtDebug(t *testing.T) {
	tests := []struct {
		name string
		call func(svc *StorageService) error
		msg  string
	}{
		{"upload", func(svc *StorageService) error {
			return svc.Upload(context.Background(), "a.png", []byte("x"), storage.UploadOptions{})
		}, "Failed to upload object"},
		{"list", func(svc *StorageService) error {
			_, err := svc.List(context.Background(), "", storage.ListOptions{})
			return err
		}, "Failed to list objects"},
		{"remove", func(svc *StorageService) error {
			return svc.Remove(context.Background(), []string{"missing.png"})
		}, "Failed to remove objects"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			info := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			svc := NewStorageService(&stubBucket{err: errors.New("boom")}, info)

			assert.EqualError(t, tt.call(svc), "boom")
			assert.Empty(t, buf.String())

			debugSvc, logs := newServiceWithLog(&stubBucket{err: errors.New("boom")})
			assert.EqualError(t, tt.call(debugSvc), "boom")
			assert.Contains(t, logs.String(), "level=DEBUG msg=\""+tt.msg+"\"")
			assert.NotContains(t, logs.String(), "level=ERROR")
		})
	}
}

func TestStorageService_Usage(t *testing.T) {
	svc, _ := newServiceWithLog(&stubBucket{})
	_, err := svc.Usage(context.Background())
	assert.ErrorIs(t, err, ErrUsageUnsupported)

	svc, _ = newServiceWithLog(&reportingBucket{usage: 4096})
	usage, err := svc.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4096), usage)
}
