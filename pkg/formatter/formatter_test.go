package formatter

import (
	"strings"
	"testing"
	"time"

	"pixdrop/internal/gallery"
	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTable_String(t *testing.T) {
	table := NewTable([]string{"NAME", "SIZE"})
	table.AddRow([]string{"cat.png", "1.5 KB"})
	table.AddRow([]string{"empty.png", "—"})
	table.AddRow([]string{"short"})

	want := strings.Join([]string{
		"+-----------+--------+",
		"| NAME      | SIZE   |",
		"+-----------+--------+",
		"| cat.png   | 1.5 KB |",
		"| empty.png | —      |",
		"| short     |        |",
		"+-----------+--------+",
	}, "\n")
	assert.Equal(t, want, table.String())
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Empty(t, NewTable(nil).String())
}

func testImages() []gallery.StoredObject {
	return []gallery.StoredObject{
		{Name: "1700000000000-abc.png", PublicURL: "https://cdn.example.com/1700000000000-abc.png", SizeBytes: 2048, CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{Name: "1700000000001-def.jpg", PublicURL: "https://cdn.example.com/1700000000001-def.jpg"},
	}
}

func TestFormatImageList(t *testing.T) {
	out := NewImageFormatter().FormatImageList(testImages())

	assert.Contains(t, out, "PUBLIC URL")
	assert.Contains(t, out, "1700000000000-abc.png")
	assert.Contains(t, out, "2 KB")
	assert.Contains(t, out, "https://cdn.example.com/1700000000001-def.jpg")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestFormatImageYAML(t *testing.T) {
	out, err := NewImageFormatter().FormatImageYAML(testImages())
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "1700000000000-abc.png", decoded[0]["name"])
	assert.Equal(t, 2048, decoded[0]["size_bytes"])
	assert.NotContains(t, decoded[1], "created_at")
}

type namedBucket struct {
	storage.Bucket
}

func (namedBucket) Name() string                  { return "images" }
func (namedBucket) ProviderName() common.Provider { return common.GCS }

func TestFormatUsage(t *testing.T) {
	out := NewImageFormatter().FormatUsage(namedBucket{}, 3*1024*1024, 12)

	assert.Contains(t, out, "Bucket: images")
	assert.Contains(t, out, "GCS")
	assert.Contains(t, out, "3.0 MB")
	assert.Contains(t, out, "| Images    | 12")
}
