// File: pkg/storage/model.go
package storage

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type SortBy struct {
	Field SortField
	Order SortOrder
}

type UploadOptions struct {
	ContentType         string
	CacheControlSeconds int
	Overwrite           bool
}

// CacheControl renders the hint as an HTTP Cache-Control header value
func (o UploadOptions) CacheControl() string {
	if o.CacheControlSeconds <= 0 {
		return ""
	}
	return "max-age=" + strconv.Itoa(o.CacheControlSeconds)
}

type ListOptions struct {
	// Zero means no limit
	Limit  int
	SortBy SortBy
}

// Entry is one object as reported by a listing
type Entry struct {
	Name      string
	CreatedAt time.Time
	Metadata  EntryMetadata
}

type EntryMetadata struct {
	Size        int64
	ContentType string
}

// SortEntries orders entries in place and truncates them to the limit in opts.
// Providers whose APIs return keys in lexical order use it to apply the requested order client side
func SortEntries(entries []Entry, opts ListOptions) []Entry {
	less := func(i, j int) bool {
		if opts.SortBy.Field == SortByCreatedAt && !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].Name < entries[j].Name
	}

	if opts.SortBy.Order == Descending {
		sort.SliceStable(entries, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(entries, less)
	}

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes) // Fallback if extremely large
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}

// FormatSize is the compact gallery rendering of an object size: a dash for unknown/empty,
// one decimal place at most, and trailing zeros dropped ("1 KB", "1.5 MB")
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "—"
	}

	sizes := []string{"B", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	return strconv.FormatFloat(math.Round(value*10)/10, 'f', -1, 64) + " " + sizes[i]
}
