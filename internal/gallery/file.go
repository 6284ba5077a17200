// File: internal/gallery/file.go
package gallery

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File is a locally selected file, held fully in memory until it is uploaded
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadFile reads path and detects its media type from the content
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	return File{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

func (f File) Size() int64 {
	return int64(len(f.Data))
}

// mediaType drops any parameters, e.g. "; charset=utf-8"
func (f File) mediaType() string {
	mt, _, _ := strings.Cut(f.ContentType, ";")
	return strings.TrimSpace(mt)
}

// DataURL renders the file as an RFC 2397 data URL
func (f File) DataURL() string {
	return "data:" + f.mediaType() + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}
