// File: pkg/storage/storage.go
package storage

import (
	"context"
	"errors"
	"pixdrop/pkg/common"
)

// PlaceholderName is the reserved object a managed bucket keeps to represent an otherwise empty folder
const PlaceholderName = ".emptyFolderPlaceholder"

// ErrObjectExists is returned by Upload when Overwrite is false and the key is already taken
var ErrObjectExists = errors.New("object already exists")

// Bucket is a single storage namespace holding uploaded objects
type Bucket interface {
	ProviderName() common.Provider
	Name() string

	// Stores data under key
	Upload(ctx context.Context, key string, data []byte, opts UploadOptions) error
	// Lists entries directly under prefix, honoring the sort order and limit in opts
	List(ctx context.Context, prefix string, opts ListOptions) ([]Entry, error)
	// Returns the URL an anonymous client can fetch key from. It never fails
	PublicURL(key string) string
	// Removes every key in a single call
	Remove(ctx context.Context, keys []string) error

	Close() error
}

// UsageReporter is implemented by providers that can report how many bytes a bucket holds
type UsageReporter interface {
	Usage(ctx context.Context) (int64, error)
}
