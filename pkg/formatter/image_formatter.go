// File: pkg/formatter/image_formatter.go
package formatter

import (
	"fmt"
	"time"

	"pixdrop/internal/gallery"
	"pixdrop/pkg/storage"

	"gopkg.in/yaml.v3"
)

type ImageFormatter struct{}

func NewImageFormatter() *ImageFormatter {
	return &ImageFormatter{}
}

func (f *ImageFormatter) FormatImageList(images []gallery.StoredObject) string {
	table := NewTable([]string{"NAME", "SIZE", "UPLOADED", "PUBLIC URL"})

	for _, img := range images {
		table.AddRow([]string{
			img.Name,
			storage.FormatSize(img.SizeBytes),
			formatUploaded(img.CreatedAt),
			img.PublicURL,
		})
	}

	return table.String()
}

type imageRecord struct {
	Name      string    `yaml:"name"`
	URL       string    `yaml:"url"`
	SizeBytes int64     `yaml:"size_bytes"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
}

// FormatImageYAML renders the list as a YAML sequence for scripts
func (f *ImageFormatter) FormatImageYAML(images []gallery.StoredObject) (string, error) {
	records := make([]imageRecord, 0, len(images))
	for _, img := range images {
		records = append(records, imageRecord{
			Name:      img.Name,
			URL:       img.PublicURL,
			SizeBytes: img.SizeBytes,
			CreatedAt: img.CreatedAt,
		})
	}

	out, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("error encoding images: %w", err)
	}
	return string(out), nil
}

func (f *ImageFormatter) FormatUsage(bucket storage.Bucket, usageBytes int64, imageCount int) string {
	var result string

	result += FormatHeaderSection("Bucket: " + bucket.Name())
	result += "\n\n"

	result += FormatSectionTitle("Usage")
	result += "\n"

	usageTable := NewTable([]string{"Parameter", "Value"})
	usageTable.AddRow([]string{"Provider", string(bucket.ProviderName())})
	usageTable.AddRow([]string{"Stored", storage.FormatBytes(usageBytes)})
	usageTable.AddRow([]string{"Images", fmt.Sprintf("%d", imageCount)})

	result += usageTable.String()
	return result
}

func formatUploaded(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04")
}
