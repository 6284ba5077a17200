// File: pkg/storage/gcp/client.go
package gcp

import (
	"context"
	"fmt"
	"log/slog"

	"pixdrop/internal/config"
	"pixdrop/internal/provider/registry"
	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
)

func init() {
	registry.RegisterProvider("gcp", registry.ProviderRegistration{
		ConfigCheck:  isConfigured,
		Initializer:  initialize,
		RequiredKeys: []string{"gcp.project"},
	})
}

// Checks if the GCP configuration block is present and the project ID is set
func isConfigured(cfg *config.Config) bool {
	return cfg.GCP != nil && cfg.GCP.Project != ""
}

// Initializes the GCP storage client from the configuration
func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Bucket, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("GCP configuration missing or incomplete")
	}
	return NewGCPStorage(ctx, cfg.GCP.Project, cfg.Bucket, cfg.PublicBaseURL, logger)
}

const defaultPublicHost = "https://storage.googleapis.com"

// Bounds the fan-out of single-object deletes in Remove
const maxParallelDeletes = 8

type GCPStorage struct {
	client     *gcpstorage.Client
	projectID  string
	bucketName string
	publicBase string
	logger     *slog.Logger
}

var (
	_ storage.Bucket        = (*GCPStorage)(nil)
	_ storage.UsageReporter = (*GCPStorage)(nil)
)

func NewGCPStorage(ctx context.Context, projectID, bucketName, publicBase string, logger *slog.Logger) (*GCPStorage, error) {
	client, err := gcpstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	if publicBase == "" {
		publicBase = defaultPublicHost + "/" + bucketName
	}

	return &GCPStorage{
		client:     client,
		projectID:  projectID,
		bucketName: bucketName,
		publicBase: publicBase,
		logger:     logger,
	}, nil
}

func (g *GCPStorage) ProviderName() common.Provider {
	return common.GCS
}

func (g *GCPStorage) Name() string {
	return g.bucketName
}

func (g *GCPStorage) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
