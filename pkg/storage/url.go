// File: pkg/storage/url.go
package storage

import (
	"net/url"
	"strings"
)

// JoinURL appends an object key to a public base URL, escaping each path segment of the key
func JoinURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
