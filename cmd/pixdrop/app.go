// File: cmd/pixdrop/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pixdrop/internal/config"
	"pixdrop/internal/desktop"
	"pixdrop/internal/gallery"
	"pixdrop/internal/provider/factory"
	"pixdrop/internal/service"
	"pixdrop/internal/ui/prompt"
	"pixdrop/pkg/formatter"
)

type appContextKey struct{}

// appContainer holds all the shared dependencies for the application
type appContainer struct {
	Config          *config.Config
	ConfigManager   *config.ConfigManager
	ProviderFactory *factory.Factory
	ImageFormatter  *formatter.ImageFormatter
	Prompter        prompt.Prompter
	Clipboard       gallery.Clipboard
	Opener          gallery.Opener
	Logger          *slog.Logger

	closers []io.Closer
}

// Creates and initializes a new application container.
// Flag overrides for provider and bucket are applied on top of the loaded configuration.
// With tolerateInvalid an unloadable configuration is replaced by an empty one so 'config' can repair it
func newApp(logger *slog.Logger, overrides globalFlags, tolerateInvalid bool) (*appContainer, error) {
	cfgManager, err := config.NewConfigManager()
	if err != nil {
		return nil, err
	}

	cfg, err := cfgManager.LoadConfig()
	if err != nil {
		if !tolerateInvalid {
			return nil, err
		}
		logger.Warn("Ignoring invalid configuration", "path", cfgManager.Path(), "error", err)
		cfg = &config.Config{}
	}
	if overrides.provider != "" {
		cfg.Provider = overrides.provider
	}
	if overrides.bucket != "" {
		cfg.Bucket = overrides.bucket
	}

	return &appContainer{
		Config:          cfg,
		ConfigManager:   cfgManager,
		ProviderFactory: factory.NewFactory(cfg, logger),
		ImageFormatter:  formatter.NewImageFormatter(),
		Prompter:        prompt.NewStandardPrompter(os.Stdin, os.Stdout),
		Clipboard:       desktop.Clipboard{},
		Opener:          desktop.Browser{},
		Logger:          logger,
	}, nil
}

func withApp(ctx context.Context, app *appContainer) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

func appFromContext(ctx context.Context) (*appContainer, error) {
	if ctx == nil {
		return nil, errors.New("application not initialized")
	}
	app, ok := ctx.Value(appContextKey{}).(*appContainer)
	if !ok || app == nil {
		return nil, errors.New("application not initialized")
	}
	return app, nil
}

// openService opens the configured bucket behind the logging service layer
func (a *appContainer) openService(ctx context.Context) (*service.StorageService, error) {
	bucket, err := a.ProviderFactory.GetBucket(ctx, "")
	if err != nil {
		return nil, err
	}
	return service.NewStorageService(bucket, a.Logger), nil
}

// newPage builds the uploader and gallery over svc, reporting through notifier
func (a *appContainer) newPage(ctx context.Context, svc *service.StorageService, notifier gallery.Notifier) *gallery.Page {
	gc := a.Config.Gallery

	uploader := gallery.NewUploader(ctx, svc, notifier, gallery.UploaderOptions{
		CacheControlSeconds: gc.CacheControlSeconds,
		ResetDelay:          gc.ResetDelay,
	})
	g := gallery.NewGallery(ctx, svc, notifier, gallery.GalleryOptions{
		PageSize:  gc.PageSize,
		Clipboard: a.Clipboard,
		Opener:    a.Opener,
	})
	return gallery.NewPage(uploader, g)
}

// Close releases the container's resources. Calling it again is a no-op
func (a *appContainer) Close() error {
	closers := a.closers
	a.closers = nil

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("error releasing resources: %w", errors.Join(errs...))
	}
	return nil
}
