// File: internal/provider/factory/factory.go
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"pixdrop/internal/config"
	"pixdrop/internal/provider/registry"
	"pixdrop/pkg/storage"
)

type Factory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Returns a list of providers that are registered and configured
func (f *Factory) GetConfiguredProviders() []string {
	var configuredProviders []string
	allRegistrations := registry.GetAllRegistrations()

	for name, registration := range allRegistrations {
		if registration.ConfigCheck(f.cfg) {
			configuredProviders = append(configuredProviders, name)
		}
	}
	sort.Strings(configuredProviders)
	return configuredProviders
}

// Checks if a specific provider is registered and configured
func (f *Factory) IsConfigured(providerName string) bool {
	registration, exists := registry.GetRegistration(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg)
}

// Opens the configured bucket on the named provider, or on the default provider when the name is empty
func (f *Factory) GetBucket(ctx context.Context, providerName string) (storage.Bucket, error) {
	if providerName == "" {
		providerName = f.cfg.Provider
	}
	if providerName == "" {
		return nil, fmt.Errorf("no provider selected. Use 'pixdrop config set provider <name>' or --provider. Supported providers are: %v", registry.GetSupportedProviders())
	}

	normalizedName := strings.ToLower(providerName)
	providerLogger := f.logger.With("provider", normalizedName)

	registration, exists := registry.GetRegistration(normalizedName)
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s. Supported providers are: %v", providerName, registry.GetSupportedProviders())
	}

	if f.cfg.Bucket == "" {
		return nil, fmt.Errorf("no bucket configured. Use 'pixdrop config set bucket <name>' or --bucket")
	}

	if !registration.ConfigCheck(f.cfg) {
		hint := "<key>"
		if len(registration.RequiredKeys) > 0 {
			hint = strings.Join(registration.RequiredKeys, ", ")
		}
		return nil, fmt.Errorf("provider '%s' is not configured. Set %s with 'pixdrop config set'", normalizedName, hint)
	}

	bucket, err := registration.Initializer(ctx, f.cfg, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", normalizedName, err)
	}

	providerLogger.Debug("Opened bucket", "bucket", bucket.Name())
	return bucket, nil
}
