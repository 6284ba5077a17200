// File: pkg/storage/gcp/objects.go
package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pixdrop/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

func (g *GCPStorage) Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) error {
	g.logger.Debug("Starting GCP object upload", "bucket", g.bucketName, "object", key, "size", len(data))

	objectHandle := g.client.Bucket(g.bucketName).Object(key)
	if !opts.Overwrite {
		objectHandle = objectHandle.If(gcpstorage.Conditions{DoesNotExist: true})
	}

	w := objectHandle.NewWriter(ctx)
	w.ContentType = opts.ContentType
	w.CacheControl = opts.CacheControl()

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}

	// The upload is only committed (and preconditions only checked) on Close
	if err := w.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return fmt.Errorf("failed to upload %s: %w", key, storage.ErrObjectExists)
		}
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (g *GCPStorage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.Entry, error) {
	g.logger.Debug("Starting GCP ListObjects operation (delimited)", "bucket", g.bucketName, "prefix", prefix)

	query := &gcpstorage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	}
	if err := query.SetAttrSelection([]string{"Name", "Created", "Size", "ContentType"}); err != nil {
		return nil, fmt.Errorf("error building object query: %w", err)
	}

	it := g.client.Bucket(g.bucketName).Objects(ctx, query)

	var entries []storage.Entry
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}

		// If attrs.Prefix is set, it's a common prefix (directory)
		if attrs.Prefix != "" {
			continue
		}

		entries = append(entries, mapObjectAttributes(attrs, prefix))
	}

	return storage.SortEntries(entries, opts), nil
}

func (g *GCPStorage) PublicURL(key string) string {
	return storage.JoinURL(g.publicBase, key)
}

// Remove deletes each key with its own request since GCS has no multi-object delete.
// A key that is already gone counts as removed
func (g *GCPStorage) Remove(ctx context.Context, keys []string) error {
	g.logger.Debug("Starting GCP object removal", "bucket", g.bucketName, "keys", keys)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelDeletes)

	bucketHandle := g.client.Bucket(g.bucketName)
	for _, key := range keys {
		eg.Go(func() error {
			err := bucketHandle.Object(key).Delete(egCtx)
			if err != nil && !errors.Is(err, gcpstorage.ErrObjectNotExist) {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			return nil
		})
	}

	return eg.Wait()
}

// Maps GCP SDK object attributes to a listing entry
func mapObjectAttributes(attrs *gcpstorage.ObjectAttrs, prefix string) storage.Entry {
	if attrs == nil {
		return storage.Entry{}
	}

	return storage.Entry{
		Name:      strings.TrimPrefix(attrs.Name, prefix),
		CreatedAt: attrs.Created,
		Metadata: storage.EntryMetadata{
			Size:        attrs.Size,
			ContentType: attrs.ContentType,
		},
	}
}
